package http

import (
	"time"

	"cartao/internal/core"
	"cartao/internal/ledger"
)

type cardJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DueDay    int       `json:"dueDay"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCardJSON(c core.Card) cardJSON {
	return cardJSON{
		ID:        c.ID,
		Name:      c.Name,
		DueDay:    c.DueDay,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type recordJSON struct {
	ID                int64  `json:"id"`
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	CardID            int64  `json:"cardId"`
	CardName          string `json:"cardName"`
	DueDay            int    `json:"dueDay"`
	PurchaseDate      string `json:"purchaseDate"`
	Description       string `json:"description"`
	Classification    string `json:"classification"`
	Total             string `json:"total"`
	InstallmentNo     int    `json:"installmentNo"`
	InstallmentCount  int    `json:"installmentCount"`
	InstallmentAmount string `json:"installmentAmount"`
	Person            string `json:"person"`
	ParentID          int64  `json:"parentId"`
}

func toRecordJSON(r core.Record) recordJSON {
	return recordJSON{
		ID:                r.ID,
		Year:              r.Year,
		Month:             r.Month,
		CardID:            r.CardID,
		CardName:          r.CardName,
		DueDay:            r.DueDay,
		PurchaseDate:      r.PurchaseDate,
		Description:       r.Description,
		Classification:    r.Classification,
		Total:             r.Total.Decimal(),
		InstallmentNo:     r.InstallmentNo,
		InstallmentCount:  r.Installments,
		InstallmentAmount: r.Amount.Decimal(),
		Person:            r.Person,
		ParentID:          r.ParentID,
	}
}

func toRecordListJSON(records []core.Record) []recordJSON {
	out := make([]recordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordJSON(r))
	}
	return out
}

type cardTotalJSON struct {
	CardID int64  `json:"cardId"`
	Name   string `json:"name"`
	Total  string `json:"total"`
}

type personTotalJSON struct {
	Person string `json:"person"`
	Total  string `json:"total"`
}

type periodTotalJSON struct {
	Period string `json:"period"`
	Total  string `json:"total"`
}

type dashboardJSON struct {
	Period        string            `json:"period"`
	MonthTotal    string            `json:"monthTotal"`
	MonthByCard   []cardTotalJSON   `json:"monthByCard"`
	MonthByPerson []personTotalJSON `json:"monthByPerson"`
	ByMonth       []periodTotalJSON `json:"byMonth"`
	ByCard        []cardTotalJSON   `json:"byCard"`
	ByPerson      []personTotalJSON `json:"byPerson"`
	People        []string          `json:"people"`
	Years         []int             `json:"years"`
}

func toDashboardJSON(sum ledger.DashboardSummary) dashboardJSON {
	out := dashboardJSON{
		Period:        sum.Period.Key(),
		MonthTotal:    sum.MonthTotal.Decimal(),
		MonthByCard:   toCardTotals(sum.MonthByCard),
		MonthByPerson: toPersonTotals(sum.MonthByPerson),
		ByCard:        toCardTotals(sum.ByCard),
		ByPerson:      toPersonTotals(sum.ByPerson),
		People:        sum.People,
		Years:         sum.Years,
	}
	out.ByMonth = make([]periodTotalJSON, 0, len(sum.ByMonth))
	for _, t := range sum.ByMonth {
		out.ByMonth = append(out.ByMonth, periodTotalJSON{Period: t.Period.Key(), Total: t.Total.Decimal()})
	}
	if out.People == nil {
		out.People = []string{}
	}
	if out.Years == nil {
		out.Years = []int{}
	}
	return out
}

func toCardTotals(totals []core.CardTotal) []cardTotalJSON {
	out := make([]cardTotalJSON, 0, len(totals))
	for _, t := range totals {
		out = append(out, cardTotalJSON{CardID: t.CardID, Name: t.Name, Total: t.Total.Decimal()})
	}
	return out
}

func toPersonTotals(totals []core.PersonTotal) []personTotalJSON {
	out := make([]personTotalJSON, 0, len(totals))
	for _, t := range totals {
		out = append(out, personTotalJSON{Person: t.Person, Total: t.Total.Decimal()})
	}
	return out
}
