package sheets

import (
	"context"
	"testing"
)

// countingStore counts reads against a fixed row matrix.
type countingStore struct {
	rows     [][]string
	allCalls int
	appends  int
}

func (c *countingStore) AllRows(ctx context.Context) ([][]string, error) {
	c.allCalls++
	return c.rows, nil
}

func (c *countingStore) HeaderRow(ctx context.Context) ([]string, error) {
	if len(c.rows) == 0 {
		return nil, nil
	}
	return c.rows[0], nil
}

func (c *countingStore) Column(ctx context.Context, index int) ([]string, error) {
	return nil, nil
}

func (c *countingStore) ColumnFormulas(ctx context.Context, index int) ([]string, error) {
	return nil, nil
}

func (c *countingStore) AppendColumn(ctx context.Context, header string, values []string) error {
	c.appends++
	return nil
}

// go test -v --run TestCachedSingleFetch
func TestCachedSingleFetch(t *testing.T) {
	inner := &countingStore{rows: [][]string{
		{"Bond", "Link", "Face Value", "Snapshot (2025-10-01 11:00)"},
		{"A", "http://x", "1000", "100"},
		{"B", "http://y", "500"},
	}}
	cached := NewCached(inner)
	ctx := context.Background()

	headers, err := cached.HeaderRow(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 4 {
		t.Errorf("got %d headers, want 4", len(headers))
	}

	col, err := cached.Column(ctx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Row B has no value in column 4; the cache pads it.
	if len(col) != 2 || col[0] != "100" || col[1] != "" {
		t.Errorf("unexpected column: %v", col)
	}

	if _, err := cached.AllRows(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.allCalls != 1 {
		t.Errorf("underlying store fetched %d times, want 1", inner.allCalls)
	}
}

// go test -v --run TestCachedAppendInvalidates
func TestCachedAppendInvalidates(t *testing.T) {
	inner := &countingStore{rows: [][]string{{"Bond"}}}
	cached := NewCached(inner)
	ctx := context.Background()

	if _, err := cached.HeaderRow(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cached.AppendColumn(ctx, "Snapshot (2025-10-01 11:00)", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cached.HeaderRow(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.appends != 1 {
		t.Errorf("append reached store %d times, want 1", inner.appends)
	}
	if inner.allCalls != 2 {
		t.Errorf("expected a refetch after append, got %d fetches", inner.allCalls)
	}
}
