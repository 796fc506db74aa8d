package core

import "time"

// SplitInstallment returns the per-installment share of a purchase total
// divided in n parts. The division truncates to whole cents and the remainder
// is not redistributed, so the installments of an unevenly divisible total sum
// to slightly less than it (1000.00 / 3 -> 333.33 each, 0.01 lost). Known
// drift, kept for compatibility with ledgers created by earlier versions.
func SplitInstallment(total Money, n int) Money {
	return Money{Cents: total.Cents / int64(n)}
}

// Schedule returns the n consecutive billing periods of a purchase made in
// the start period.
func Schedule(start Period, n int) []Period {
	periods := make([]Period, n)
	for i := 0; i < n; i++ {
		periods[i] = start.AddMonths(i)
	}
	return periods
}

// ExpandPurchase turns one purchase into its installment records. Every
// record carries the shared parentID, the 1-based installment index, the
// total count, and a snapshot of the card's name and due day. An unparseable
// purchase date returns ErrInvalidDate rather than producing zero-period
// records.
func ExpandPurchase(card Card, p Purchase, parentID int64, now time.Time) ([]Record, error) {
	start, err := ParsePurchaseDate(p.Date)
	if err != nil {
		return nil, err
	}
	share := SplitInstallment(p.Total, p.Installments)

	records := make([]Record, 0, p.Installments)
	for i, period := range Schedule(start, p.Installments) {
		records = append(records, Record{
			Year:           period.Year,
			Month:          period.Month,
			CardID:         card.ID,
			CardName:       card.Name,
			DueDay:         card.DueDay,
			PurchaseDate:   p.Date,
			Description:    p.Description,
			Classification: p.Classification,
			Total:          p.Total,
			InstallmentNo:  i + 1,
			Installments:   p.Installments,
			Amount:         share,
			Person:         p.Person,
			ParentID:       parentID,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return records, nil
}
