package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cartao/internal/core"
	"cartao/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) AddCard(ctx context.Context, c core.Card) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (name, due_day, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.Name, c.DueDay, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("card insert id: %w", err)
	}

	slog.InfoContext(ctx, "Card saved to SQLite",
		"card_id", id,
		"name", c.Name,
		"due_day", c.DueDay)

	return id, nil
}

func (r *SQLiteRepository) GetCard(ctx context.Context, id int64) (core.Card, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, due_day, created_at, updated_at FROM cards WHERE id = ?`, id)
	return scanCard(row)
}

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, due_day, created_at, updated_at FROM cards ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *SQLiteRepository) UpdateCard(ctx context.Context, c core.Card) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cards SET name = ?, due_day = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.DueDay, time.Now().UTC(), c.ID)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteCard(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return requireRow(res)
}

const recordColumns = `id, year, month, card_id, card_name, due_day, purchase_date,
	description, classification, total_cents, installment_no, installment_count,
	installment_cents, person, parent_id, created_at, updated_at`

func (r *SQLiteRepository) AddRecord(ctx context.Context, rec core.Record) (int64, error) {
	now := time.Now().UTC()
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO records (year, month, card_id, card_name, due_day, purchase_date,
			description, classification, total_cents, installment_no, installment_count,
			installment_cents, person, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Year, rec.Month, rec.CardID, rec.CardName, rec.DueDay, rec.PurchaseDate,
		rec.Description, rec.Classification, rec.Total.Cents, rec.InstallmentNo,
		rec.Installments, rec.Amount.Cents, rec.Person, rec.ParentID, createdAt, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record insert id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetRecord(ctx context.Context, id int64) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	return scanRecord(row)
}

func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]core.Record, error) {
	return r.queryRecords(ctx, `SELECT `+recordColumns+` FROM records ORDER BY id`)
}

func (r *SQLiteRepository) UpdateRecord(ctx context.Context, rec core.Record) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE records SET purchase_date = ?, description = ?, classification = ?,
			installment_cents = ?, person = ?, updated_at = ?
		WHERE id = ?`,
		rec.PurchaseDate, rec.Description, rec.Classification,
		rec.Amount.Cents, rec.Person, time.Now().UTC(), rec.ID)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return requireRow(res)
}

// DeleteRecordsByParent removes every installment of a purchase group in a
// single transaction and reports how many rows went away.
func (r *SQLiteRepository) DeleteRecordsByParent(ctx context.Context, parentID int64) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete group: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM records WHERE parent_id = ?`, parentID)
	if err != nil {
		return 0, fmt.Errorf("delete group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete group rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete group: %w", err)
	}
	return int(affected), nil
}

func (r *SQLiteRepository) FilterRecords(ctx context.Context, f core.Filter) ([]core.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records`
	var conds []string
	var args []any
	if f.Year != 0 {
		conds = append(conds, "year = ?")
		args = append(args, f.Year)
	}
	if f.Month != 0 {
		conds = append(conds, "month = ?")
		args = append(args, f.Month)
	}
	if f.CardID != 0 {
		conds = append(conds, "card_id = ?")
		args = append(args, f.CardID)
	}
	if f.Classification != "" {
		conds = append(conds, "classification = ?")
		args = append(args, f.Classification)
	}
	if f.Person != "" {
		conds = append(conds, "person = ?")
		args = append(args, f.Person)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	return r.queryRecords(ctx, query, args...)
}

func (r *SQLiteRepository) queryRecords(ctx context.Context, query string, args ...any) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (core.Card, error) {
	var c core.Card
	err := row.Scan(&c.ID, &c.Name, &c.DueDay, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Card{}, fmt.Errorf("scan card: %w", err)
	}
	return c, nil
}

func scanRecord(row rowScanner) (core.Record, error) {
	var rec core.Record
	err := row.Scan(&rec.ID, &rec.Year, &rec.Month, &rec.CardID, &rec.CardName,
		&rec.DueDay, &rec.PurchaseDate, &rec.Description, &rec.Classification,
		&rec.Total.Cents, &rec.InstallmentNo, &rec.Installments, &rec.Amount.Cents,
		&rec.Person, &rec.ParentID, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("scan record: %w", err)
	}
	return rec, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}
