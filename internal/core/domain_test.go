package core

import "testing"

func TestParsePurchaseDate(t *testing.T) {
	cases := []struct {
		in    string
		year  int
		month int
		ok    bool
	}{
		{"15/11/2024", 2024, 11, true},
		{"01/01/2025", 2025, 1, true},
		{"2024-11-15", 2024, 11, true},
		{"2025-02-01", 2025, 2, true},
		{" 2024-06-30 ", 2024, 6, true},
		{"", 0, 0, false},
		{"15/13/2024", 0, 0, false},
		{"32/01/2024", 0, 0, false},
		{"15/11", 0, 0, false},
		{"2024-13-01", 0, 0, false},
		{"abc", 0, 0, false},
	}
	for _, tc := range cases {
		p, err := ParsePurchaseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			if p.Year != tc.year || p.Month != tc.month {
				t.Fatalf("%q: got (%d,%d), want (%d,%d)", tc.in, p.Year, p.Month, tc.year, tc.month)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestCardValidate(t *testing.T) {
	if err := (Card{Name: "Nubank", DueDay: 10}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Card{
		{Name: "", DueDay: 10},
		{Name: "  ", DueDay: 10},
		{Name: "Nubank", DueDay: 0},
		{Name: "Nubank", DueDay: 32},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestPurchaseValidate(t *testing.T) {
	good := Purchase{
		CardID:         1,
		Date:           "2024-11-15",
		Description:    "Geladeira",
		Classification: "Casa",
		Total:          Money{Cents: 100000},
		Installments:   3,
		Person:         "Ana",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Purchase)
	}{
		{"bad date", func(p *Purchase) { p.Date = "nope" }},
		{"empty description", func(p *Purchase) { p.Description = " " }},
		{"empty classification", func(p *Purchase) { p.Classification = "" }},
		{"empty person", func(p *Purchase) { p.Person = "" }},
		{"zero amount", func(p *Purchase) { p.Total = Money{} }},
		{"negative amount", func(p *Purchase) { p.Total = Money{Cents: -100} }},
		{"zero installments", func(p *Purchase) { p.Installments = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := good
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPeriodAddMonths(t *testing.T) {
	cases := []struct {
		start Period
		n     int
		want  Period
	}{
		{Period{2024, 11}, 0, Period{2024, 11}},
		{Period{2024, 11}, 1, Period{2024, 12}},
		{Period{2024, 11}, 2, Period{2025, 1}},
		{Period{2024, 1}, 12, Period{2025, 1}},
		{Period{2023, 12}, 25, Period{2026, 1}},
	}
	for i, tc := range cases {
		if got := tc.start.AddMonths(tc.n); got != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestPeriodKey(t *testing.T) {
	if got := (Period{2025, 3}).Key(); got != "2025-03" {
		t.Fatalf("got %q", got)
	}
	if got := (Period{2024, 12}).Key(); got != "2024-12" {
		t.Fatalf("got %q", got)
	}
}
