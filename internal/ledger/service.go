// Package ledger orchestrates purchases, cards and records over a Store.
// The installment expansion itself is pure (internal/core); this service adds
// persistence, group-id generation and event publishing.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/snowflake"

	"cartao/internal/core"
)

// PartialLaunchError reports a purchase launch that failed after some of its
// installments were already persisted. The inserted prefix is not rolled
// back; Persisted says how far the loop got.
type PartialLaunchError struct {
	ParentID  int64
	Persisted int
	Total     int
	Err       error
}

func (e *PartialLaunchError) Error() string {
	return fmt.Sprintf("purchase %d: persisted %d of %d installments: %v",
		e.ParentID, e.Persisted, e.Total, e.Err)
}

func (e *PartialLaunchError) Unwrap() error { return e.Err }

// RecordUpdate is the merge-patch applied by the edit flow. Nil fields keep
// the stored value. Only these five fields are editable; the period, the
// group linkage and the snapshots are immutable after launch.
type RecordUpdate struct {
	PurchaseDate   *string
	Description    *string
	Classification *string
	Amount         *core.Money
	Person         *string
}

// DashboardSummary bundles the derived read views of the ledger. All of it
// is projected on demand from the full record set.
type DashboardSummary struct {
	Period        core.Period
	MonthTotal    core.Money
	MonthByCard   []core.CardTotal
	MonthByPerson []core.PersonTotal
	ByMonth       []core.PeriodTotal
	ByCard        []core.CardTotal
	ByPerson      []core.PersonTotal
	People        []string
	Years         []int
}

type Service struct {
	store  Store
	events EventPublisher // optional
	node   *snowflake.Node
}

func NewService(store Store, events EventPublisher) (*Service, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node: %w", err)
	}
	return &Service{store: store, events: events, node: node}, nil
}

// LaunchPurchase expands one purchase into its installment records and
// persists them sequentially. On a mid-loop failure the already inserted
// installments stay in the ledger and the error reports the persisted
// prefix. Returns the group identifier shared by all installments.
func (s *Service) LaunchPurchase(ctx context.Context, p core.Purchase) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	card, err := s.store.GetCard(ctx, p.CardID)
	if err != nil {
		return 0, fmt.Errorf("card %d: %w", p.CardID, err)
	}

	parentID := s.node.Generate().Int64()
	records, err := core.ExpandPurchase(card, p, parentID, time.Now())
	if err != nil {
		return 0, err
	}
	for i, r := range records {
		if _, err := s.store.AddRecord(ctx, r); err != nil {
			return parentID, &PartialLaunchError{
				ParentID:  parentID,
				Persisted: i,
				Total:     len(records),
				Err:       err,
			}
		}
	}

	slog.InfoContext(ctx, "Purchase launched",
		"parent_id", parentID,
		"card_id", card.ID,
		"installments", p.Installments,
		"total_cents", p.Total.Cents)
	s.publishLaunched(ctx, parentID, len(records))
	return parentID, nil
}

// DeletePurchase removes every installment of one purchase group and
// reports the count.
func (s *Service) DeletePurchase(ctx context.Context, parentID int64) (int, error) {
	count, err := s.store.DeleteRecordsByParent(ctx, parentID)
	if err != nil {
		return 0, fmt.Errorf("delete purchase %d: %w", parentID, err)
	}
	slog.InfoContext(ctx, "Purchase deleted", "parent_id", parentID, "records", count)
	if count > 0 {
		s.publishDeleted(ctx, parentID, count)
	}
	return count, nil
}

// DeleteRecords removes the selected records one by one, in the order
// given. Like the launch loop this is not transactional: the first failure
// is surfaced and earlier deletions stand.
func (s *Service) DeleteRecords(ctx context.Context, ids []int64) (int, error) {
	for i, id := range ids {
		if err := s.store.DeleteRecord(ctx, id); err != nil {
			return i, fmt.Errorf("delete record %d: %w", id, err)
		}
	}
	if len(ids) > 0 {
		s.publishDeleted(ctx, 0, len(ids))
	}
	return len(ids), nil
}

// DeleteRecord removes a single record.
func (s *Service) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	s.publishDeleted(ctx, 0, 1)
	return nil
}

// UpdateRecord applies the patch to one record and stamps it.
func (s *Service) UpdateRecord(ctx context.Context, id int64, patch RecordUpdate) (core.Record, error) {
	r, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return core.Record{}, fmt.Errorf("record %d: %w", id, err)
	}
	if patch.PurchaseDate != nil {
		if _, err := core.ParsePurchaseDate(*patch.PurchaseDate); err != nil {
			return core.Record{}, err
		}
		r.PurchaseDate = *patch.PurchaseDate
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	if patch.Classification != nil {
		r.Classification = *patch.Classification
	}
	if patch.Amount != nil {
		if patch.Amount.Cents <= 0 {
			return core.Record{}, core.ErrInvalidAmount
		}
		r.Amount = *patch.Amount
	}
	if patch.Person != nil {
		r.Person = *patch.Person
	}
	if err := s.store.UpdateRecord(ctx, r); err != nil {
		return core.Record{}, fmt.Errorf("update record %d: %w", id, err)
	}
	return r, nil
}

func (s *Service) GetRecord(ctx context.Context, id int64) (core.Record, error) {
	return s.store.GetRecord(ctx, id)
}

// FilterRecords returns the matching records plus the sum of their
// installment amounts, the way the query screen shows them.
func (s *Service) FilterRecords(ctx context.Context, f core.Filter) ([]core.Record, core.Money, error) {
	records, err := s.store.FilterRecords(ctx, f)
	if err != nil {
		return nil, core.Money{}, err
	}
	return records, core.Sum(records), nil
}

// Dashboard projects the summary views from the full record set.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (DashboardSummary, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("list records: %w", err)
	}
	current := core.Period{Year: now.Year(), Month: int(now.Month())}
	monthRecords := core.FilterRecords(records, core.Filter{Year: current.Year, Month: current.Month})
	return DashboardSummary{
		Period:        current,
		MonthTotal:    core.Sum(monthRecords),
		MonthByCard:   core.TotalsByCard(monthRecords),
		MonthByPerson: core.TotalsByPerson(monthRecords),
		ByMonth:       core.MonthlyTotals(records),
		ByCard:        core.TotalsByCard(records),
		ByPerson:      core.TotalsByPerson(records),
		People:        core.People(records),
		Years:         core.Years(records),
	}, nil
}

// CreateCard validates and persists a new card.
func (s *Service) CreateCard(ctx context.Context, name string, dueDay int) (core.Card, error) {
	c := core.Card{Name: name, DueDay: dueDay}
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}
	id, err := s.store.AddCard(ctx, c)
	if err != nil {
		return core.Card{}, fmt.Errorf("add card: %w", err)
	}
	return s.store.GetCard(ctx, id)
}

// UpdateCard renames a card or moves its due day. Existing records keep
// their snapshots.
func (s *Service) UpdateCard(ctx context.Context, id int64, name string, dueDay int) (core.Card, error) {
	c, err := s.store.GetCard(ctx, id)
	if err != nil {
		return core.Card{}, fmt.Errorf("card %d: %w", id, err)
	}
	c.Name = name
	c.DueDay = dueDay
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}
	if err := s.store.UpdateCard(ctx, c); err != nil {
		return core.Card{}, fmt.Errorf("update card %d: %w", id, err)
	}
	return s.store.GetCard(ctx, id)
}

// DeleteCard removes the card without touching its records.
func (s *Service) DeleteCard(ctx context.Context, id int64) error {
	return s.store.DeleteCard(ctx, id)
}

func (s *Service) GetCard(ctx context.Context, id int64) (core.Card, error) {
	return s.store.GetCard(ctx, id)
}

func (s *Service) ListCards(ctx context.Context) ([]core.Card, error) {
	return s.store.ListCards(ctx)
}

func (s *Service) publishLaunched(ctx context.Context, parentID int64, count int) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishPurchaseLaunched(ctx, parentID, count); err != nil {
		// Events feed the snapshot worker; the ledger write already
		// succeeded, so only log.
		slog.ErrorContext(ctx, "Failed to publish launch event",
			"parent_id", parentID, "error", err)
	}
}

func (s *Service) publishDeleted(ctx context.Context, parentID int64, count int) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordsDeleted(ctx, parentID, count); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete event",
			"parent_id", parentID, "error", err)
	}
}
