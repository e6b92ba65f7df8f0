package volume

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bondwatch/pkg/sheets"
)

// faceValueColumn is the fixed sheet column holding each bond's face
// value multiplier (column C).
const faceValueColumn = 3

// ErrInsufficientData is returned when fewer than two usable snapshot
// columns fall inside the requested range. Callers must treat it as
// "send nothing", never as a zero volume.
var ErrInsufficientData = errors.New("fewer than 2 snapshot columns in range")

// Calculator computes signed volume deltas between snapshot columns.
//
// Sign convention: per-row change is earlier minus later, so a falling
// inventory count produces a positive delta (units sold). Value change
// is that quantity delta times the bond's face value.
type Calculator struct {
	Store        sheets.Store
	HeaderPrefix string
	Location     *time.Location

	// MaxGap bounds the spacing between consecutive columns; a pair
	// further apart is reported as a missing interval and excluded
	// from the sum.
	MaxGap time.Duration
}

// Interval is the delta between one consecutive pair of snapshot
// columns.
type Interval struct {
	From      Column
	To        Column
	RawChange float64 // sum of per-row quantity deltas
	NetChange float64 // sum of per-row quantity deltas x face value
	Entities  int     // rows that contributed to this interval
	Missing   bool    // gap exceeded MaxGap; excluded from totals
}

// Report is the result of one volume calculation over a time range.
type Report struct {
	RawChange   float64
	NetChange   float64
	Start       time.Time
	End         time.Time
	FirstHeader string // header of the earliest column actually used
	LastHeader  string // header of the latest column actually used
	Entities    int
	Intervals   []Interval
}

// Range computes the cumulative volume between start and end. It reads
// the whole table once, selects the snapshot columns inside [start,
// end], and sums deltas between consecutive columns only; first-to-last
// diffing would hide uneven sampling gaps.
func (c *Calculator) Range(ctx context.Context, start, end time.Time) (Report, error) {
	rows, err := c.Store.AllRows(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read snapshot table: %w", err)
	}
	if len(rows) == 0 {
		return Report{}, ErrInsufficientData
	}

	cols := SnapshotColumns(rows[0], c.HeaderPrefix, c.Location)

	var inRange []Column
	for _, col := range cols {
		if !col.Time.Before(start) && !col.Time.After(end) {
			inRange = append(inRange, col)
		}
	}
	if len(inRange) < 2 {
		return Report{}, ErrInsufficientData
	}

	body := rows[1:]
	report := Report{
		Start:       start,
		End:         end,
		FirstHeader: inRange[0].Header,
		LastHeader:  inRange[len(inRange)-1].Header,
	}

	measured := 0
	for i := 0; i+1 < len(inRange); i++ {
		earlier, later := inRange[i], inRange[i+1]

		interval := Interval{From: earlier, To: later}
		if c.MaxGap > 0 && later.Time.Sub(earlier.Time) > c.MaxGap {
			interval.Missing = true
			report.Intervals = append(report.Intervals, interval)
			continue
		}
		measured++

		for _, row := range body {
			raw, net, ok := rowDelta(row, earlier.Index, later.Index)
			if !ok {
				continue
			}
			interval.RawChange += raw
			interval.NetChange += net
			interval.Entities++
		}

		report.RawChange += interval.RawChange
		report.NetChange += interval.NetChange
		if interval.Entities > report.Entities {
			report.Entities = interval.Entities
		}
		report.Intervals = append(report.Intervals, interval)
	}

	// Every pair over MaxGap means nothing was measured; the zero total
	// must not be mistaken for zero volume.
	if measured == 0 {
		return Report{}, ErrInsufficientData
	}

	return report, nil
}

// Between computes the delta between the snapshot columns closest to
// the two target times, within tolerance. It is the two-column special
// case of Range, with explicit column matching.
func (c *Calculator) Between(ctx context.Context, startTarget, endTarget time.Time, tolerance time.Duration) (Report, error) {
	rows, err := c.Store.AllRows(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read snapshot table: %w", err)
	}
	if len(rows) == 0 {
		return Report{}, ErrInsufficientData
	}

	cols := SnapshotColumns(rows[0], c.HeaderPrefix, c.Location)

	earlier, ok := ClosestColumn(cols, startTarget, tolerance)
	if !ok {
		return Report{}, ErrInsufficientData
	}
	later, ok := ClosestColumn(cols, endTarget, tolerance)
	if !ok || later.Index == earlier.Index {
		return Report{}, ErrInsufficientData
	}

	interval := Interval{From: earlier, To: later}
	for _, row := range rows[1:] {
		raw, net, ok := rowDelta(row, earlier.Index, later.Index)
		if !ok {
			continue
		}
		interval.RawChange += raw
		interval.NetChange += net
		interval.Entities++
	}

	return Report{
		RawChange:   interval.RawChange,
		NetChange:   interval.NetChange,
		Start:       earlier.Time,
		End:         later.Time,
		FirstHeader: earlier.Header,
		LastHeader:  later.Header,
		Entities:    interval.Entities,
		Intervals:   []Interval{interval},
	}, nil
}

// rowDelta computes one row's contribution between two columns. A row
// where either quantity or the face value fails numeric parsing is
// excluded entirely, not treated as zero.
func rowDelta(row []string, earlierIdx, laterIdx int) (raw, net float64, ok bool) {
	earlierQty, ok := cellFloat(row, earlierIdx)
	if !ok {
		return 0, 0, false
	}
	laterQty, ok := cellFloat(row, laterIdx)
	if !ok {
		return 0, 0, false
	}
	face, ok := cellFloat(row, faceValueColumn)
	if !ok {
		return 0, 0, false
	}

	raw = earlierQty - laterQty
	return raw, raw * face, true
}

func cellFloat(row []string, index int) (float64, bool) {
	if index < 1 || index > len(row) {
		return 0, false
	}
	cell := row[index-1]
	if cell == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
