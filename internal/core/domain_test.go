package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		err  error
	}{
		{"2024-01-01", NewDate(2024, 1, 1), nil},
		{" 2024-12-31 ", NewDate(2024, 12, 31), nil},
		{"2024-01-01T00:00:00.000Z", NewDate(2024, 1, 1), nil},
		{"2024-03-05T10:30:00+05:30", Date{Time: time.Date(2024, 3, 5, 5, 0, 0, 0, time.UTC)}, nil},
		{"", Date{}, ErrMissingDate},
		{"01/02/2024", Date{}, ErrInvalidDate},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.True(t, tc.want.Equal(got.Time), "input %q: got %v", tc.in, got)
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, 1, 1))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-01T00:00:00.000Z"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-01"`), &d))
	assert.Equal(t, "2024-01-01", d.FormValue())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	err = json.Unmarshal([]byte(`20240101`), &d)
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Username: "A", Amount: 40, Category: "Khana", Date: NewDate(2024, 1, 1)}
	require.NoError(t, good.Validate())

	// Only presence is checked: negative amounts and unknown categories pass.
	permissive := Expense{Username: "A", Amount: -5, Category: "Fuel", Date: NewDate(2024, 1, 1)}
	require.NoError(t, permissive.Validate())

	bads := []struct {
		e   Expense
		err error
	}{
		{Expense{Username: " ", Amount: 1, Category: "c", Date: NewDate(2024, 1, 1)}, ErrMissingUsername},
		{Expense{Username: "a", Amount: 1, Category: "", Date: NewDate(2024, 1, 1)}, ErrMissingCategory},
		{Expense{Username: "a", Amount: 1, Category: "c"}, ErrMissingDate},
	}
	for i, tc := range bads {
		assert.ErrorIs(t, tc.e.Validate(), tc.err, "case %d", i)
	}
}

func TestExpenseJSONShape(t *testing.T) {
	e := Expense{ID: "abc", Username: "A", Amount: 40, Category: "Khana", Date: NewDate(2024, 1, 1)}
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"abc","username":"A","amount":40,"category":"Khana","date":"2024-01-01T00:00:00.000Z"}`, string(b))
}
