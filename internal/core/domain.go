package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type (
	Money struct {
		Cents int64
	}

	// Card is a credit card profile with a monthly due day.
	Card struct {
		ID        int64
		Name      string
		DueDay    int // 1-31
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Record is one installment line of a purchase. CardName and DueDay are
	// snapshots taken when the purchase is launched; later card edits do not
	// touch them.
	Record struct {
		ID             int64
		Year           int
		Month          int // 1-12
		CardID         int64
		CardName       string
		DueDay         int
		PurchaseDate   string // as entered: DD/MM/YYYY or YYYY-MM-DD
		Description    string
		Classification string
		Total          Money // full purchase amount
		InstallmentNo  int   // 1-based index within the purchase
		Installments   int   // total installment count
		Amount         Money // this installment's share
		Person         string
		ParentID       int64 // shared by all installments of one purchase
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}

	// Purchase is the input of a launch: one purchase to be split in
	// installments starting at its purchase month.
	Purchase struct {
		CardID         int64
		Date           string
		Description    string
		Classification string
		Total          Money
		Installments   int
		Person         string
	}

	// Period is a calendar year and month.
	Period struct {
		Year  int
		Month int // 1-12
	}
)

var (
	ErrInvalidDueDay       = errors.New("due day must be between 1 and 31")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidInstallments = errors.New("installment count must be at least 1")
	ErrInvalidDate         = errors.New("invalid purchase date")
	ErrEmptyName           = errors.New("empty card name")
	ErrEmptyDescription    = errors.New("empty description")
	ErrEmptyClassification = errors.New("empty classification")
	ErrEmptyPerson         = errors.New("empty person")
)

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return nil
}

func (p Purchase) Validate() error {
	if _, err := ParsePurchaseDate(p.Date); err != nil {
		return err
	}
	if len(strings.TrimSpace(p.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(p.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if strings.TrimSpace(p.Classification) == "" {
		return ErrEmptyClassification
	}
	if strings.TrimSpace(p.Person) == "" {
		return ErrEmptyPerson
	}
	if p.Total.Cents <= 0 {
		return ErrInvalidAmount
	}
	if p.Installments < 1 {
		return ErrInvalidInstallments
	}
	return nil
}

// AddMonths advances the period by n months, rolling month overflow into
// year increments.
func (p Period) AddMonths(n int) Period {
	m := p.Year*12 + (p.Month - 1) + n
	return Period{Year: m / 12, Month: m%12 + 1}
}

// Key returns the YYYY-MM bucket key used by monthly aggregations.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// ParsePurchaseDate extracts the calendar year and month from a purchase
// date in either DD/MM/YYYY or ISO YYYY-MM-DD form.
func ParsePurchaseDate(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Period{}, ErrInvalidDate
	}
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return Period{}, ErrInvalidDate
		}
		day, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		year, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return Period{}, ErrInvalidDate
		}
		if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 {
			return Period{}, ErrInvalidDate
		}
		return Period{Year: year, Month: month}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Period{}, ErrInvalidDate
	}
	return Period{Year: t.Year(), Month: int(t.Month())}, nil
}
