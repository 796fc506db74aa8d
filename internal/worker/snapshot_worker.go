package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cartao/internal/amqp"
	"cartao/internal/core"
	"cartao/internal/export"
	"cartao/internal/ledger"
)

// SnapshotFilename is the name of the CSV snapshot kept in the export
// directory. The worker rewrites it whenever the ledger changes.
const SnapshotFilename = "ledger-snapshot.csv"

// SnapshotWorker keeps an on-disk CSV snapshot of the full ledger in sync
// with the store. It reacts to ledger events from AMQP and can also be
// driven periodically.
type SnapshotWorker struct {
	store     ledger.Store
	exportDir string
}

func NewSnapshotWorker(store ledger.Store, exportDir string) *SnapshotWorker {
	return &SnapshotWorker{
		store:     store,
		exportDir: exportDir,
	}
}

// HandleEvent processes a single ledger event message from AMQP. Every
// event kind triggers a full snapshot rewrite; the message only tells us
// the ledger changed.
func (w *SnapshotWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"kind", msg.Kind,
		"parent_id", msg.ParentID,
		"count", msg.Count)

	switch msg.Kind {
	case amqp.KindPurchaseLaunched, amqp.KindRecordsDeleted:
		return w.WriteSnapshot(ctx)
	default:
		slog.WarnContext(ctx, "Unknown ledger event kind, skipping", "kind", msg.Kind)
		return nil
	}
}

// WriteSnapshot exports the entire ledger to CSV and atomically replaces
// the snapshot file.
func (w *SnapshotWorker) WriteSnapshot(ctx context.Context) error {
	records, err := w.store.FilterRecords(ctx, core.Filter{})
	if err != nil {
		return fmt.Errorf("load records for snapshot: %w", err)
	}

	if err := os.MkdirAll(w.exportDir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	data := export.CSV(records)

	tmp, err := os.CreateTemp(w.exportDir, "snapshot-*.csv")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}

	target := filepath.Join(w.exportDir, SnapshotFilename)
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Ledger snapshot written",
		"path", target,
		"records", len(records))

	return nil
}

// SnapshotPath returns the location of the current snapshot file.
func (w *SnapshotWorker) SnapshotPath() string {
	return filepath.Join(w.exportDir, SnapshotFilename)
}
