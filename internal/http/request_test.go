package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/core"
)

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Khana", sanitizeInput("  Kha\x00na\x07 "))
	assert.Equal(t, "a\tb", sanitizeInput("a\tb"))
}

func TestDecodeExpenseTrimsFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/expenses",
		strings.NewReader(`{"username":" A ","amount":40,"category":" Khana","date":"2024-01-01T00:00:00.000Z"}`))

	e, err := decodeExpense(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, core.Expense{Username: "A", Amount: 40, Category: "Khana", Date: core.NewDate(2024, 1, 1)}, e)
}

func TestDecodeExpenseIgnoresClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/expenses",
		strings.NewReader(`{"_id":"forged","username":"A","amount":1,"category":"Khana","date":"2024-01-01"}`))

	e, err := decodeExpense(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Empty(t, e.ID)
}

func TestDecodeExpenseBodyLimit(t *testing.T) {
	big := `{"username":"` + strings.Repeat("a", maxBodyBytes) + `","amount":1,"category":"Khana","date":"2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(big))

	_, err := decodeExpense(httptest.NewRecorder(), req)
	assert.ErrorIs(t, err, errMalformedBody)
}

func TestResponseBuilder(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponse().Status(http.StatusCreated).Header("X-Test", "1").JSON("ok").Write(rec)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Test"))
	assert.JSONEq(t, `"ok"`, rec.Body.String())

	rec = httptest.NewRecorder()
	BadRequest("nope").Write(rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "nope\n", rec.Body.String())

	rec = httptest.NewRecorder()
	NewResponse().JSON(make(chan int)).Write(rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
