package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Workbook is a Store backed by a local xlsx file. It is used for
// offline runs and test fixtures; open it at job start and close it on
// every exit path.
type Workbook struct {
	file  *excelize.File
	path  string
	sheet string
}

// OpenWorkbook opens the workbook at path, creating it (with the given
// sheet) when it does not exist yet.
func OpenWorkbook(path, sheet string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f := excelize.NewFile()
		if sheet != "Sheet1" {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
			}
			if err := f.DeleteSheet("Sheet1"); err != nil {
				return nil, fmt.Errorf("drop default sheet: %w", err)
			}
		}
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("create workbook %s: %w", path, err)
		}
		return &Workbook{file: f, path: path, sheet: sheet}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path, sheet: sheet}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) HeaderRow(ctx context.Context) ([]string, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (w *Workbook) Column(ctx context.Context, index int) ([]string, error) {
	cols, err := w.file.GetCols(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	if index < 1 || index > len(cols) {
		return nil, nil
	}
	col := cols[index-1]
	if len(col) <= 1 {
		return nil, nil
	}
	return col[1:], nil
}

func (w *Workbook) AllRows(ctx context.Context) ([][]string, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func (w *Workbook) ColumnFormulas(ctx context.Context, index int) ([]string, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var out []string
	for rowIdx := 2; rowIdx <= len(rows); rowIdx++ {
		cell, err := excelize.CoordinatesToCellName(index, rowIdx)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		formula, err := w.file.GetCellFormula(w.sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("read formula %s: %w", cell, err)
		}
		if formula != "" {
			out = append(out, "="+formula)
			continue
		}
		value, err := w.file.GetCellValue(w.sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("read cell %s: %w", cell, err)
		}
		out = append(out, value)
	}
	return out, nil
}

func (w *Workbook) AppendColumn(ctx context.Context, header string, values []string) error {
	headers, err := w.HeaderRow(ctx)
	if err != nil {
		return err
	}
	col := len(headers) + 1

	cell, err := excelize.CoordinatesToCellName(col, 1)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := w.file.SetCellValue(w.sheet, cell, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(col, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, value); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}

	if err := w.file.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
