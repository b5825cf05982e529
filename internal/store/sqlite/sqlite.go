// Package sqlite stores expenses in a single SQLite table shaped like the
// document record, with UUID text ids.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"kharcha/internal/core"
)

const dateColumnLayout = time.RFC3339Nano

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and applies migrations.
func New(dbPath string) (*Store, error) {
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

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, amount, category, date FROM expenses ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var (
			e      core.Expense
			amount float64
			date   string
		)
		if err := rows.Scan(&e.ID, &e.Username, &amount, &e.Category, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		t, err := time.Parse(dateColumnLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		e.Amount = core.Amount(amount)
		e.Date = core.Date{Time: t.UTC()}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (s *Store) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (id, username, amount, category, date) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Username, float64(e.Amount), e.Category, e.Date.UTC().Format(dateColumnLayout))
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.DebugContext(ctx, "Expense saved to SQLite", "id", e.ID, "category", e.Category)
	return e, nil
}

func (s *Store) Update(ctx context.Context, id string, e core.Expense) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET username = ?, amount = ?, category = ?, date = ? WHERE id = ?",
		e.Username, float64(e.Amount), e.Category, e.Date.UTC().Format(dateColumnLayout), id)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
