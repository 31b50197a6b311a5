// Package ledger stores the user's income and expense transactions in a
// sqlite file.
//
// The store is the only source of truth for budget and investment figures.
// Every mutation is committed before it returns, and mutations are
// serialized, so the store can be shared by concurrent callers.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/date"
	"github.com/etnz/fgpt/logger"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// Memory is the path of a private in-memory ledger.
const Memory = ":memory:"

// Store is a ledger backed by sqlite.
type Store struct {
	mu sync.Mutex // serializes writes
	db *sql.DB
}

// Open opens the ledger file at path, creating it and its directory when
// needed, and migrates its schema. Use Memory for a throw-away ledger.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", path, err)
	}
	// A single connection: an in-memory database lives and dies with its
	// connection, and a file ledger has a single writer anyway.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping ledger %q: %w", path, err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger %q: %w", path, err)
	}

	logger.FromContext(ctx).Debug().Str("path", path).Msg("ledger opened")
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add records a transaction and returns it with its new id.
//
// on is free text: "2025-04-15", "April 2025", "yesterday"... It is
// normalized to YYYY-MM-DD; empty means today; text that cannot be read as a
// date is stored as is.
func (s *Store) Add(ctx context.Context, typ Type, category string, amount fgpt.Money, on string) (Transaction, error) {
	typ, err := ParseType(string(typ))
	if err != nil {
		return Transaction{}, err
	}
	if amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: %v", ErrNegativeAmount, amount)
	}

	tx := Transaction{
		Date:     date.NormalizeDay(on),
		Type:     typ,
		Category: category,
		Amount:   amount,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (date, type, category, amount) VALUES (?, ?, ?, ?)",
		tx.Date, string(tx.Type), tx.Category, amount.Decimal().InexactFloat64())
	if err != nil {
		return Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	tx.ID, err = res.LastInsertId()
	if err != nil {
		return Transaction{}, fmt.Errorf("read transaction id: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("id", tx.ID).
		Str("type", string(tx.Type)).
		Str("category", tx.Category).
		Str("amount", amount.StringFixed(2)).
		Str("date", tx.Date).
		Msg("transaction added")
	return tx, nil
}

// List returns all transactions in insertion order. An empty ledger returns
// an empty slice.
func (s *Store) List(ctx context.Context) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, date, type, category, amount FROM transactions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := []Transaction{}
	for rows.Next() {
		var (
			tx     Transaction
			typ    string
			amount float64
		)
		if err := rows.Scan(&tx.ID, &tx.Date, &typ, &tx.Category, &amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = Type(typ)
		tx.Amount = fgpt.M(decimal.NewFromFloat(amount))
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Delete removes the transaction id. Deleting an id that does not exist is
// not an error: the ledger ends up without that id either way.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	logger.FromContext(ctx).Info().Int64("id", id).Int64("deleted", n).Msg("transaction deleted")
	return nil
}

// Clear removes every transaction and returns how many were removed. Ids are
// not reused after a Clear.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions")
	if err != nil {
		return 0, fmt.Errorf("clear transactions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear transactions: %w", err)
	}
	logger.FromContext(ctx).Info().Int64("deleted", n).Msg("ledger cleared")
	return n, nil
}
