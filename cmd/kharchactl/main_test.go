package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"kharcha/internal/core"
	apphttp "kharcha/internal/http"
	"kharcha/internal/log"
	"kharcha/internal/services"
	"kharcha/internal/store/memory"
	"kharcha/internal/view"
)

type CtlSuite struct {
	suite.Suite
	ts *httptest.Server
}

func (s *CtlSuite) SetupTest() {
	srv := apphttp.NewServer(apphttp.Options{
		Service:            services.NewExpenseService(memory.New(), nil, log.Discard()),
		RateLimitPerMinute: 1000,
		Logger:             log.Discard(),
	})
	s.ts = httptest.NewServer(srv.Handler)
	s.T().Cleanup(func() {
		s.ts.Close()
		_ = srv.Shutdown(context.Background())
	})
}

func (s *CtlSuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--api-url", s.ts.URL))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (s *CtlSuite) mustRun(args ...string) string {
	out, err := s.run(args...)
	s.Require().NoError(err, out)
	return out
}

func (s *CtlSuite) listJSON() []core.Expense {
	var got []core.Expense
	s.Require().NoError(json.Unmarshal([]byte(s.mustRun("list", "--json")), &got))
	return got
}

func (s *CtlSuite) TestAddThenList() {
	out := s.mustRun("add", "-u", "A", "-a", "40", "-c", "Khana", "-d", "2024-01-01")
	s.Contains(out, "Expense Added Successfully!")

	out = s.mustRun("list")
	s.Contains(out, "USERNAME")
	s.Contains(out, "₹40")
	s.Contains(out, "Khana")
	s.Contains(out, "1 Jan 2024")
}

func (s *CtlSuite) TestListEmpty() {
	s.Contains(s.mustRun("list"), view.EmptyText)
	s.Empty(s.listJSON())
}

func (s *CtlSuite) TestAddRequiresFlags() {
	_, err := s.run("add", "-u", "A")
	s.Error(err)
	s.Empty(s.listJSON())
}

func (s *CtlSuite) TestAddRejectedByServer() {
	_, err := s.run("add", "-u", "A", "-a", "abc", "-c", "Khana", "-d", "2024-01-01")
	s.ErrorContains(err, "failed to add expense")
}

func (s *CtlSuite) TestEditKeepsUnsetFields() {
	s.mustRun("add", "-u", "A", "-a", "40", "-c", "Khana", "-d", "2024-01-01")
	id := s.listJSON()[0].ID

	s.Contains(s.mustRun("edit", id, "--amount", "55"), "Expense Updated Successfully!")

	got := s.listJSON()
	s.Require().Len(got, 1)
	s.Equal(core.Expense{ID: id, Username: "A", Amount: 55, Category: "Khana", Date: core.NewDate(2024, 1, 1)}, got[0])
}

func (s *CtlSuite) TestEditUnknownID() {
	_, err := s.run("edit", "missing", "--amount", "1")
	s.ErrorContains(err, `no expense with id "missing"`)
}

func (s *CtlSuite) TestDelete() {
	s.mustRun("add", "-u", "A", "-a", "40", "-c", "Khana", "-d", "2024-01-01")
	id := s.listJSON()[0].ID

	s.Contains(s.mustRun("delete", id), "Expense Deleted Successfully!")
	s.Empty(s.listJSON())
}

func (s *CtlSuite) seed() {
	s.mustRun("add", "-u", "A", "-a", "100", "-c", "Petrol", "-d", "2024-01-01")
	s.mustRun("add", "-u", "B", "-a", "50", "-c", "Khana", "-d", "2024-01-02")
	s.mustRun("add", "-u", "C", "-a", "25", "-c", "Petrol", "-d", "2024-01-03")
}

func (s *CtlSuite) TestSummary() {
	s.seed()

	out := s.mustRun("summary")
	s.Contains(out, view.ChartTitle)
	s.Contains(out, "Total Expense: ₹175")

	out = s.mustRun("summary", "-c", "Petrol")
	s.Contains(out, "Total Expense: ₹125")
	s.Contains(out, "100.0%")
}

func (s *CtlSuite) TestExportCSVToStdout() {
	s.seed()

	out := s.mustRun("export", "csv", "-c", "Petrol", "-o", "-")
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	s.Require().NoError(err)
	s.Equal([]string{"Total", "125", "", ""}, rows[len(rows)-1])
	s.Len(rows, 4)
}

func (s *CtlSuite) TestExportXLSXToFile() {
	s.seed()
	path := filepath.Join(s.T().TempDir(), "out.xlsx")

	s.Contains(s.mustRun("export", "xlsx", "-o", path), "Exported 3 expenses")
	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.True(bytes.HasPrefix(data, []byte("PK")))
}

func (s *CtlSuite) TestExportUnknownFormat() {
	_, err := s.run("export", "pdf")
	s.ErrorContains(err, "unknown export format")
}

func (s *CtlSuite) TestSyncDryRun() {
	s.mustRun("add", "-u", "A", "-a", "40", "-c", "Khana", "-d", "2024-01-01")

	lines := strings.Split(strings.TrimRight(s.mustRun("sync", "--dry-run"), "\n"), "\n")
	s.Equal([]string{
		"Username\tAmount\tCategory\tDate",
		"A\t40\tKhana\t2024-01-01",
		"Total\t40\t\t",
	}, lines)
}

func TestCtlSuite(t *testing.T) {
	suite.Run(t, new(CtlSuite))
}

func TestServerDown(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list", "--api-url", url, "--timeout", "1s"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list expenses")
}
