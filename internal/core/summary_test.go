package core

import "testing"

func sampleRecords() []Record {
	return []Record{
		{ID: 1, Year: 2024, Month: 11, CardID: 1, CardName: "Visa", Amount: Money{Cents: 1000}, Person: "Ana", Classification: "Casa"},
		{ID: 2, Year: 2024, Month: 12, CardID: 1, CardName: "Visa", Amount: Money{Cents: 1000}, Person: "Ana", Classification: "Casa"},
		{ID: 3, Year: 2024, Month: 11, CardID: 2, CardName: "Master", Amount: Money{Cents: 2500}, Person: "Bruno", Classification: "Lazer"},
		{ID: 4, Year: 2025, Month: 1, CardID: 2, CardName: "Master", Amount: Money{Cents: 500}, Person: "Bruno", Classification: "Casa"},
	}
}

func TestFilterRecords(t *testing.T) {
	records := sampleRecords()

	t.Run("empty filter matches everything", func(t *testing.T) {
		if got := FilterRecords(records, Filter{}); len(got) != 4 {
			t.Fatalf("got %d records, want 4", len(got))
		}
	})

	t.Run("year and person are a conjunction", func(t *testing.T) {
		got := FilterRecords(records, Filter{Year: 2024, Person: "Ana"})
		if len(got) != 2 {
			t.Fatalf("got %d records, want 2", len(got))
		}
		for _, r := range got {
			if r.Year != 2024 || r.Person != "Ana" {
				t.Fatalf("record %d does not match both predicates", r.ID)
			}
		}
	})

	t.Run("classification", func(t *testing.T) {
		got := FilterRecords(records, Filter{Classification: "Lazer"})
		if len(got) != 1 || got[0].ID != 3 {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("card and month", func(t *testing.T) {
		got := FilterRecords(records, Filter{CardID: 2, Month: 11})
		if len(got) != 1 || got[0].ID != 3 {
			t.Fatalf("got %v", got)
		}
	})
}

func TestMonthTotal(t *testing.T) {
	records := sampleRecords()
	if got := MonthTotal(records, Period{2024, 11}); got.Cents != 3500 {
		t.Fatalf("got %d, want 3500", got.Cents)
	}
	if got := MonthTotal(records, Period{2030, 1}); got.Cents != 0 {
		t.Fatalf("got %d, want 0", got.Cents)
	}
}

func TestTotalsByCard(t *testing.T) {
	got := TotalsByCard(sampleRecords())
	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got))
	}
	// Sorted by name: Master before Visa.
	if got[0].Name != "Master" || got[0].Total.Cents != 3000 {
		t.Fatalf("bucket 0: %+v", got[0])
	}
	if got[1].Name != "Visa" || got[1].Total.Cents != 2000 {
		t.Fatalf("bucket 1: %+v", got[1])
	}
}

func TestTotalsByPerson(t *testing.T) {
	got := TotalsByPerson(sampleRecords())
	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got))
	}
	if got[0].Person != "Bruno" || got[0].Total.Cents != 3000 {
		t.Fatalf("biggest spender first: %+v", got[0])
	}
	if got[1].Person != "Ana" || got[1].Total.Cents != 2000 {
		t.Fatalf("bucket 1: %+v", got[1])
	}
}

func TestMonthlyTotals(t *testing.T) {
	got := MonthlyTotals(sampleRecords())
	if len(got) != 3 {
		t.Fatalf("got %d buckets, want 3", len(got))
	}
	if got[0].Period != (Period{2025, 1}) {
		t.Fatalf("most recent first, got %v", got[0].Period)
	}
	if got[2].Period != (Period{2024, 11}) || got[2].Total.Cents != 3500 {
		t.Fatalf("oldest bucket: %+v", got[2])
	}
}

func TestDistinctPeopleAndYears(t *testing.T) {
	records := sampleRecords()
	people := People(records)
	if len(people) != 2 || people[0] != "Ana" || people[1] != "Bruno" {
		t.Fatalf("people: %v", people)
	}
	years := Years(records)
	if len(years) != 2 || years[0] != 2025 || years[1] != 2024 {
		t.Fatalf("years: %v", years)
	}
}

func TestAggregationsOverEmptyLedger(t *testing.T) {
	var none []Record
	if got := Sum(none); got.Cents != 0 {
		t.Fatalf("sum: %d", got.Cents)
	}
	if got := MonthTotal(none, Period{2024, 11}); got.Cents != 0 {
		t.Fatalf("month total: %d", got.Cents)
	}
	if got := TotalsByCard(none); len(got) != 0 {
		t.Fatalf("by card: %v", got)
	}
	if got := TotalsByPerson(none); len(got) != 0 {
		t.Fatalf("by person: %v", got)
	}
	if got := MonthlyTotals(none); len(got) != 0 {
		t.Fatalf("monthly: %v", got)
	}
	if got := People(none); len(got) != 0 {
		t.Fatalf("people: %v", got)
	}
	if got := Years(none); len(got) != 0 {
		t.Fatalf("years: %v", got)
	}
}
