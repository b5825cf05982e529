package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the date-only form sent by forms and accepted by the API.
	DateLayout = "2006-01-02"

	// timestampLayout matches the ISO form document stores hand back (millisecond precision, UTC).
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type (
	// Date is a calendar date persisted as a UTC timestamp.
	Date struct {
		time.Time
	}

	// Expense is the only record kept by the store.
	Expense struct {
		ID       string `json:"_id,omitempty"`
		Username string `json:"username"`
		Amount   Amount `json:"amount"`
		Category string `json:"category"`
		Date     Date   `json:"date"`
	}
)

var (
	ErrMissingUsername = errors.New("username is required")
	ErrMissingAmount   = errors.New("amount is required")
	ErrMissingCategory = errors.New("category is required")
	ErrMissingDate     = errors.New("date is required")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
)

// NewDate creates a new Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts either a date-only string or a full RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrMissingDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t.UTC()}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t.UTC()}, nil
}

// FormValue returns the date-only string used to pre-fill an edit form.
func (d Date) FormValue() string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(DateLayout)
}

// String renders the stored timestamp.
func (d Date) String() string {
	return d.UTC().Format(timestampLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: expected a string", ErrInvalidDate)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks that every field is present. Nothing else is enforced:
// amount sign and category membership are left to the caller.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Username) == "" {
		return ErrMissingUsername
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrMissingCategory
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// WithID returns a copy of e carrying id.
func (e Expense) WithID(id string) Expense {
	e.ID = id
	return e
}
