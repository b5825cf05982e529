package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"kharcha/internal/core"
)

const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("request body must be a JSON object")

// expenseRequest tells a missing field apart from a zero value.
type expenseRequest struct {
	Username *string      `json:"username"`
	Amount   *core.Amount `json:"amount"`
	Category *string      `json:"category"`
	Date     *core.Date   `json:"date"`
}

// decodeExpense reads and checks an expense body. Every error it returns is
// the caller's fault and maps to 400.
func decodeExpense(w http.ResponseWriter, r *http.Request) (core.Expense, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		for _, sentinel := range []error{core.ErrInvalidAmount, core.ErrMissingAmount, core.ErrInvalidDate, core.ErrMissingDate} {
			if errors.Is(err, sentinel) {
				return core.Expense{}, err
			}
		}
		return core.Expense{}, fmt.Errorf("%w: %v", errMalformedBody, err)
	}

	switch {
	case req.Username == nil:
		return core.Expense{}, core.ErrMissingUsername
	case req.Amount == nil:
		return core.Expense{}, core.ErrMissingAmount
	case req.Category == nil:
		return core.Expense{}, core.ErrMissingCategory
	case req.Date == nil:
		return core.Expense{}, core.ErrMissingDate
	}

	e := core.Expense{
		Username: sanitizeInput(*req.Username),
		Amount:   *req.Amount,
		Category: sanitizeInput(*req.Category),
		Date:     *req.Date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// sanitizeInput trims whitespace and drops control characters other than
// tab and newlines.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
