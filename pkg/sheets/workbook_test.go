package sheets

import (
	"context"
	"path/filepath"
	"testing"
)

// go test -v --run TestWorkbookRoundTrip
func TestWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.xlsx")
	ctx := context.Background()

	wb, err := OpenWorkbook(path, "Sheet1")
	if err != nil {
		t.Fatalf("failed to create workbook: %v", err)
	}
	defer wb.Close()

	if err := wb.AppendColumn(ctx, "Bond", []string{"UGRO 2027", "Navi 2026"}); err != nil {
		t.Fatalf("append bond column: %v", err)
	}
	if err := wb.AppendColumn(ctx, "Link", []string{"https://example.com/a", "https://example.com/b"}); err != nil {
		t.Fatalf("append link column: %v", err)
	}
	if err := wb.AppendColumn(ctx, "Snapshot (2025-10-01 11:00)", []string{"100", "40"}); err != nil {
		t.Fatalf("append snapshot column: %v", err)
	}

	headers, err := wb.HeaderRow(ctx)
	if err != nil {
		t.Fatalf("read header row: %v", err)
	}
	if len(headers) != 3 || headers[2] != "Snapshot (2025-10-01 11:00)" {
		t.Errorf("unexpected headers: %v", headers)
	}

	col, err := wb.Column(ctx, 3)
	if err != nil {
		t.Fatalf("read column: %v", err)
	}
	if len(col) != 2 || col[0] != "100" || col[1] != "40" {
		t.Errorf("unexpected snapshot column: %v", col)
	}

	rows, err := wb.AllRows(ctx)
	if err != nil {
		t.Fatalf("read all rows: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
}

// go test -v --run TestWorkbookReopen
func TestWorkbookReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.xlsx")
	ctx := context.Background()

	wb, err := OpenWorkbook(path, "Sheet1")
	if err != nil {
		t.Fatalf("failed to create workbook: %v", err)
	}
	if err := wb.AppendColumn(ctx, "Bond", []string{"UGRO 2027"}); err != nil {
		t.Fatalf("append column: %v", err)
	}
	if err := wb.Close(); err != nil {
		t.Fatalf("close workbook: %v", err)
	}

	reopened, err := OpenWorkbook(path, "Sheet1")
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer reopened.Close()

	headers, err := reopened.HeaderRow(ctx)
	if err != nil {
		t.Fatalf("read header row: %v", err)
	}
	if len(headers) != 1 || headers[0] != "Bond" {
		t.Errorf("data lost across reopen: %v", headers)
	}
}

func TestWorkbookEmptyColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	wb, err := OpenWorkbook(path, "Sheet1")
	if err != nil {
		t.Fatalf("failed to create workbook: %v", err)
	}
	defer wb.Close()

	col, err := wb.Column(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != nil {
		t.Errorf("expected nil for out-of-range column, got %v", col)
	}
}
