package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cartao/internal/core"
)

// parseFilter builds a record filter from query parameters. Absent or empty
// parameters leave the corresponding filter field at its zero value, which
// matches everything.
func parseFilter(r *http.Request) (core.Filter, error) {
	var f core.Filter
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return core.Filter{}, fmt.Errorf("invalid year %q", v)
		}
		f.Year = y
	}
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return core.Filter{}, fmt.Errorf("invalid month %q", v)
		}
		f.Month = m
	}
	if v := strings.TrimSpace(q.Get("cardId")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return core.Filter{}, fmt.Errorf("invalid cardId %q", v)
		}
		f.CardID = id
	}
	f.Classification = strings.TrimSpace(q.Get("classification"))
	f.Person = strings.TrimSpace(q.Get("person"))

	return f, nil
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
