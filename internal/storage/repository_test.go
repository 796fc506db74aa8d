package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cartao/internal/core"
	"cartao/internal/ledger"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "cartao.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func insertRecord(t *testing.T, repo *SQLiteRepository, rec core.Record) int64 {
	t.Helper()
	id, err := repo.AddRecord(context.Background(), rec)
	if err != nil {
		t.Fatalf("add record: %v", err)
	}
	return id
}

func sampleRecord(parentID int64, month int) core.Record {
	return core.Record{
		Year:           2024,
		Month:          month,
		CardID:         1,
		CardName:       "Visa",
		DueDay:         10,
		PurchaseDate:   "15/11/2024",
		Description:    "Sofa",
		Classification: "Casa",
		Total:          core.Money{Cents: 100000},
		InstallmentNo:  1,
		Installments:   3,
		Amount:         core.Money{Cents: 33333},
		Person:         "Ana",
		ParentID:       parentID,
	}
}

func TestCardRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	id, err := repo.AddCard(ctx, core.Card{Name: "Visa", DueDay: 10})
	if err != nil {
		t.Fatalf("add card: %v", err)
	}

	card, err := repo.GetCard(ctx, id)
	if err != nil {
		t.Fatalf("get card: %v", err)
	}
	if card.Name != "Visa" || card.DueDay != 10 {
		t.Fatalf("unexpected card: %+v", card)
	}
	if card.CreatedAt.IsZero() || card.UpdatedAt.IsZero() {
		t.Fatal("timestamps not stamped")
	}

	card.Name = "Visa Platinum"
	card.DueDay = 25
	if err := repo.UpdateCard(ctx, card); err != nil {
		t.Fatalf("update card: %v", err)
	}
	got, err := repo.GetCard(ctx, id)
	if err != nil {
		t.Fatalf("get card: %v", err)
	}
	if got.Name != "Visa Platinum" || got.DueDay != 25 {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := repo.DeleteCard(ctx, id); err != nil {
		t.Fatalf("delete card: %v", err)
	}
	if _, err := repo.GetCard(ctx, id); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCardNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	if _, err := repo.GetCard(ctx, 42); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateCard(ctx, core.Card{ID: 42, Name: "x", DueDay: 1}); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteCard(ctx, 42); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	id := insertRecord(t, repo, sampleRecord(7, 11))

	rec, err := repo.GetRecord(ctx, id)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Description != "Sofa" || rec.Total.Cents != 100000 || rec.Amount.Cents != 33333 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ParentID != 7 || rec.Installments != 3 {
		t.Fatalf("group fields lost: %+v", rec)
	}

	rec.Description = "Sofa retratil"
	rec.Amount = core.Money{Cents: 40000}
	if err := repo.UpdateRecord(ctx, rec); err != nil {
		t.Fatalf("update record: %v", err)
	}
	got, err := repo.GetRecord(ctx, id)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if got.Description != "Sofa retratil" || got.Amount.Cents != 40000 {
		t.Fatalf("update not applied: %+v", got)
	}
	// UpdateRecord touches editable columns only.
	if got.Total.Cents != 100000 || got.InstallmentNo != 1 || got.ParentID != 7 {
		t.Fatalf("immutable columns changed: %+v", got)
	}

	if err := repo.DeleteRecord(ctx, id); err != nil {
		t.Fatalf("delete record: %v", err)
	}
	if _, err := repo.GetRecord(ctx, id); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteRecordsByParent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	insertRecord(t, repo, sampleRecord(7, 11))
	insertRecord(t, repo, sampleRecord(7, 12))
	keep := insertRecord(t, repo, sampleRecord(9, 11))

	n, err := repo.DeleteRecordsByParent(ctx, 7)
	if err != nil {
		t.Fatalf("delete group: %v", err)
	}
	if n != 2 {
		t.Fatalf("deleted %d, want 2", n)
	}

	records, err := repo.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 1 || records[0].ID != keep {
		t.Fatalf("wrong survivors: %+v", records)
	}

	// Unknown groups delete zero rows without error.
	n, err = repo.DeleteRecordsByParent(ctx, 424242)
	if err != nil {
		t.Fatalf("delete unknown group: %v", err)
	}
	if n != 0 {
		t.Fatalf("deleted %d, want 0", n)
	}
}

func TestFilterRecords(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	nov := sampleRecord(1, 11)
	insertRecord(t, repo, nov)

	dec := sampleRecord(1, 12)
	dec.Person = "Bruno"
	dec.Classification = "Lazer"
	insertRecord(t, repo, dec)

	other := sampleRecord(2, 11)
	other.Year = 2025
	other.CardID = 2
	insertRecord(t, repo, other)

	cases := []struct {
		name   string
		filter core.Filter
		want   int
	}{
		{"all", core.Filter{}, 3},
		{"year", core.Filter{Year: 2024}, 2},
		{"year and month", core.Filter{Year: 2024, Month: 12}, 1},
		{"card", core.Filter{CardID: 2}, 1},
		{"person", core.Filter{Person: "Bruno"}, 1},
		{"classification", core.Filter{Classification: "Lazer"}, 1},
		{"no match", core.Filter{Year: 2024, Person: "Carla"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := repo.FilterRecords(ctx, tc.filter)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if len(records) != tc.want {
				t.Fatalf("got %d records, want %d", len(records), tc.want)
			}
		})
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cartao.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	id, err := repo.AddCard(context.Background(), core.Card{Name: "Visa", DueDay: 10})
	if err != nil {
		t.Fatalf("add card: %v", err)
	}
	repo.Close()

	// Reopening replays migrations against the same file without error
	// and the data survives.
	repo, err = NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer repo.Close()

	card, err := repo.GetCard(context.Background(), id)
	if err != nil {
		t.Fatalf("get card: %v", err)
	}
	if card.Name != "Visa" {
		t.Fatalf("data lost across reopen: %+v", card)
	}
}
