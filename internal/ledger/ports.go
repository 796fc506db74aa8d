package ledger

import (
	"context"
	"errors"

	"cartao/internal/core"
)

// ErrNotFound is returned by stores when a card or record id does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence port of the ledger. It owns both collections;
// nothing above this interface mutates entities directly. Implementations
// stamp UpdatedAt on every mutation.
type Store interface {
	AddCard(ctx context.Context, c core.Card) (int64, error)
	GetCard(ctx context.Context, id int64) (core.Card, error)
	ListCards(ctx context.Context) ([]core.Card, error)
	UpdateCard(ctx context.Context, c core.Card) error
	// DeleteCard removes the card only. Records referencing it are left in
	// place; orphaned references are tolerated.
	DeleteCard(ctx context.Context, id int64) error

	AddRecord(ctx context.Context, r core.Record) (int64, error)
	GetRecord(ctx context.Context, id int64) (core.Record, error)
	ListRecords(ctx context.Context) ([]core.Record, error)
	UpdateRecord(ctx context.Context, r core.Record) error
	DeleteRecord(ctx context.Context, id int64) error
	// DeleteRecordsByParent atomically removes every record of one purchase
	// group and reports how many vanished. Unknown groups delete zero
	// records without error.
	DeleteRecordsByParent(ctx context.Context, parentID int64) (int, error)
	FilterRecords(ctx context.Context, f core.Filter) ([]core.Record, error)
}

// EventPublisher notifies downstream consumers of ledger mutations. A nil
// publisher is valid: events are then skipped.
type EventPublisher interface {
	PublishPurchaseLaunched(ctx context.Context, parentID int64, count int) error
	PublishRecordsDeleted(ctx context.Context, parentID int64, count int) error
}
