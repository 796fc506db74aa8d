package worker

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"cartao/internal/amqp"
	"cartao/internal/core"
	"cartao/internal/export"
	"cartao/internal/memory"
)

func seedRecord(t *testing.T, store *memory.Store, description string) {
	t.Helper()
	_, err := store.AddRecord(context.Background(), core.Record{
		Year: 2024, Month: 11, CardID: 1, CardName: "Visa", DueDay: 10,
		PurchaseDate: "15/11/2024", Description: description, Classification: "Casa",
		Total: core.Money{Cents: 10000}, InstallmentNo: 1, Installments: 1,
		Amount: core.Money{Cents: 10000}, Person: "Ana", ParentID: 1,
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func TestWriteSnapshot(t *testing.T) {
	store := memory.New()
	seedRecord(t, store, "Mercado")
	seedRecord(t, store, "Padaria")

	w := NewSnapshotWorker(store, t.TempDir())
	if err := w.WriteSnapshot(context.Background()); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	data, err := os.ReadFile(w.SnapshotPath())
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, export.CSVHeader) {
		t.Error("snapshot missing CSV header")
	}
	if !strings.Contains(content, "Mercado") || !strings.Contains(content, "Padaria") {
		t.Error("snapshot missing seeded rows")
	}
}

func TestWriteSnapshotEmptyLedger(t *testing.T) {
	w := NewSnapshotWorker(memory.New(), t.TempDir())
	if err := w.WriteSnapshot(context.Background()); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	data, err := os.ReadFile(w.SnapshotPath())
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(data) != export.CSVHeader+"\n" {
		t.Errorf("empty snapshot = %q", string(data))
	}
}

func TestHandleEventRewritesSnapshot(t *testing.T) {
	store := memory.New()
	seedRecord(t, store, "Mercado")

	w := NewSnapshotWorker(store, t.TempDir())
	msg := &amqp.LedgerEventMessage{
		Kind:      amqp.KindPurchaseLaunched,
		ParentID:  1,
		Count:     1,
		Timestamp: time.Now(),
	}
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if _, err := os.Stat(w.SnapshotPath()); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
}

func TestHandleEventUnknownKind(t *testing.T) {
	w := NewSnapshotWorker(memory.New(), t.TempDir())
	msg := &amqp.LedgerEventMessage{Kind: "mystery", Timestamp: time.Now()}
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("unknown kinds must be skipped, got %v", err)
	}
	if _, err := os.Stat(w.SnapshotPath()); !os.IsNotExist(err) {
		t.Error("unknown kind must not write a snapshot")
	}
}
