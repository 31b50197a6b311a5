package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/date"
)

// newStore returns an isolated in-memory ledger.
func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Memory)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", Memory, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustAdd(t *testing.T, s *Store, typ Type, category string, amount float64, on string) Transaction {
	t.Helper()
	tx, err := s.Add(context.Background(), typ, category, fgpt.M(amount), on)
	if err != nil {
		t.Fatalf("Add(%s, %q, %v, %q) error = %v", typ, category, amount, on, err)
	}
	return tx
}

func TestStore_AddList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	inputs := []struct {
		typ      Type
		category string
		amount   float64
	}{
		{Expense, "groceries", 50},
		{Income, "salary", 3000},
		{Expense, "rent", 1200.5},
		{Expense, "coffee", 0},
	}

	seen := map[int64]bool{}
	for i, in := range inputs {
		tx := mustAdd(t, s, in.typ, in.category, in.amount, "2025-04-15")
		if seen[tx.ID] {
			t.Fatalf("Add() reused id %d", tx.ID)
		}
		seen[tx.ID] = true

		txs, err := s.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(txs) != i+1 {
			t.Fatalf("List() len = %d, want %d", len(txs), i+1)
		}
		last := txs[len(txs)-1]
		if last.ID != tx.ID || last.Category != in.category || !last.Amount.Equal(fgpt.M(in.amount)) || last.Type != in.typ {
			t.Errorf("List() last = %+v, want %+v", last, tx)
		}
	}
}

func TestStore_AddNormalizesDate(t *testing.T) {
	s := newStore(t)

	tests := []struct{ on, want string }{
		{"April 2025", "2025-04-01"},
		{"2025-04-15", "2025-04-15"},
		{"", date.Today().String()},
		// unreadable dates are stored as given
		{"payday", "payday"},
	}
	for _, tt := range tests {
		tx := mustAdd(t, s, Expense, "misc", 1, tt.on)
		if tx.Date != tt.want {
			t.Errorf("Add(date=%q).Date = %q, want %q", tt.on, tx.Date, tt.want)
		}
	}
}

func TestStore_AddValidates(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Add(ctx, "gift", "misc", fgpt.M(1), ""); !errors.Is(err, ErrInvalidType) {
		t.Errorf("Add(type=gift) error = %v, want ErrInvalidType", err)
	}
	if _, err := s.Add(ctx, Expense, "misc", fgpt.M(-1), ""); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("Add(-1) error = %v, want ErrNegativeAmount", err)
	}
	tx, err := s.Add(ctx, "INCOME", "bonus", fgpt.M(1), "")
	if err != nil {
		t.Fatal(err)
	}
	if tx.Type != Income {
		t.Errorf("Add(type=INCOME).Type = %q, want income", tx.Type)
	}
}

func TestStore_ListEmpty(t *testing.T) {
	txs, err := newStore(t).List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if txs == nil || len(txs) != 0 {
		t.Errorf("List() = %#v, want an empty non-nil slice", txs)
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	a := mustAdd(t, s, Expense, "groceries", 50, "")
	b := mustAdd(t, s, Expense, "rent", 900, "")

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	after, _ := s.List(ctx)

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if err := s.Delete(ctx, 9999); err != nil {
		t.Fatalf("Delete(unknown) error = %v", err)
	}
	again, _ := s.List(ctx)

	if len(after) != 1 || len(again) != 1 || again[0].ID != b.ID {
		t.Errorf("after deletes: %+v then %+v, want only %d", after, again, b.ID)
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	mustAdd(t, s, Expense, "groceries", 50, "")
	last := mustAdd(t, s, Income, "salary", 100, "")

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	txs, _ := s.List(ctx)
	if len(txs) != 0 {
		t.Errorf("List() after Clear() = %v, want empty", txs)
	}
	if n, _ := s.Clear(ctx); n != 0 {
		t.Errorf("Clear() on empty ledger = %d, want 0", n)
	}

	// ids keep increasing after a clear.
	next := mustAdd(t, s, Expense, "groceries", 50, "")
	if next.ID <= last.ID {
		t.Errorf("id after Clear() = %d, want > %d", next.ID, last.ID)
	}
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "budget.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	tx := mustAdd(t, s, Expense, "groceries", 42.5, "2025-04-15")
	s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	txs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 || txs[0].ID != tx.ID || !txs[0].Amount.Equal(fgpt.M(42.5)) {
		t.Errorf("List() after reopen = %+v, want [%+v]", txs, tx)
	}
}

func TestStore_ConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	const n = 50
	ids := make(chan int64, n)
	errs := make(chan error, 2*n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tx, err := s.Add(ctx, Income, "salary", fgpt.M(10), "2025-04-15")
			if err != nil {
				errs <- err
				return
			}
			ids <- tx.ID
		}()
		go func() {
			defer wg.Done()
			if _, err := s.Summarize(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)
	for err := range errs {
		t.Errorf("concurrent call error = %v", err)
	}

	seen := map[int64]bool{}
	var last int64
	for id := range ids {
		if seen[id] {
			t.Errorf("id %d returned twice", id)
		}
		seen[id] = true
		last = max(last, id)
	}
	if len(seen) != n {
		t.Errorf("got %d distinct ids, want %d", len(seen), n)
	}

	sum, err := s.Summarize(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != n || !sum.Income.Equal(fgpt.M(10*n)) {
		t.Errorf("Summarize() = %d transactions for %s, want %d for %s", sum.Count, sum.Income, n, fgpt.M(10*n))
	}

	if _, err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	next := mustAdd(t, s, Expense, "groceries", 5, "")
	if seen[next.ID] || next.ID <= last {
		t.Errorf("id after Clear() = %d, want > %d", next.ID, last)
	}
}
