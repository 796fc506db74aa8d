package core

import "sort"

// Filter selects records by the conjunction of its set fields. Zero values
// match everything, so the empty filter selects the whole ledger.
type Filter struct {
	Year           int
	Month          int
	CardID         int64
	Classification string
	Person         string
}

func (f Filter) Matches(r Record) bool {
	if f.Year != 0 && r.Year != f.Year {
		return false
	}
	if f.Month != 0 && r.Month != f.Month {
		return false
	}
	if f.CardID != 0 && r.CardID != f.CardID {
		return false
	}
	if f.Classification != "" && r.Classification != f.Classification {
		return false
	}
	if f.Person != "" && r.Person != f.Person {
		return false
	}
	return true
}

// FilterRecords returns the records matching the filter, preserving order.
func FilterRecords(records []Record, f Filter) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// CardTotal is an installment-amount sum bucketed by card.
type CardTotal struct {
	CardID int64
	Name   string
	Total  Money
}

// PersonTotal is an installment-amount sum bucketed by responsible person.
type PersonTotal struct {
	Person string
	Total  Money
}

// PeriodTotal is an installment-amount sum bucketed by year-month.
type PeriodTotal struct {
	Period Period
	Total  Money
}

// Sum adds up the installment amounts of the given records.
func Sum(records []Record) Money {
	var total int64
	for _, r := range records {
		total += r.Amount.Cents
	}
	return Money{Cents: total}
}

// MonthTotal sums the installment amounts falling in the given period.
func MonthTotal(records []Record, p Period) Money {
	return Sum(FilterRecords(records, Filter{Year: p.Year, Month: p.Month}))
}

// TotalsByCard groups installment amounts by card, using the denormalized
// card-name snapshot for display. Sorted by card name.
func TotalsByCard(records []Record) []CardTotal {
	byID := map[int64]*CardTotal{}
	for _, r := range records {
		t, ok := byID[r.CardID]
		if !ok {
			t = &CardTotal{CardID: r.CardID, Name: r.CardName}
			byID[r.CardID] = t
		}
		t.Total.Cents += r.Amount.Cents
	}
	out := make([]CardTotal, 0, len(byID))
	for _, t := range byID {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TotalsByPerson groups installment amounts by person, biggest spender first.
func TotalsByPerson(records []Record) []PersonTotal {
	byPerson := map[string]int64{}
	for _, r := range records {
		byPerson[r.Person] += r.Amount.Cents
	}
	out := make([]PersonTotal, 0, len(byPerson))
	for person, cents := range byPerson {
		out = append(out, PersonTotal{Person: person, Total: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Person < out[j].Person
	})
	return out
}

// MonthlyTotals groups installment amounts into year-month buckets, most
// recent first.
func MonthlyTotals(records []Record) []PeriodTotal {
	byPeriod := map[Period]int64{}
	for _, r := range records {
		byPeriod[Period{Year: r.Year, Month: r.Month}] += r.Amount.Cents
	}
	out := make([]PeriodTotal, 0, len(byPeriod))
	for p, cents := range byPeriod {
		out = append(out, PeriodTotal{Period: p, Total: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Period.Before(out[i].Period) })
	return out
}

// People returns the distinct responsible persons, ascending.
func People(records []Record) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Person]; ok {
			continue
		}
		seen[r.Person] = struct{}{}
		out = append(out, r.Person)
	}
	sort.Strings(out)
	return out
}

// Years returns the distinct years present in the ledger, descending.
func Years(records []Record) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, r := range records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
