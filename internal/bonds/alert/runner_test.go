package alert

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bondwatch/internal/bonds/volume"

	"go.uber.org/zap"
)

// fakeSender records sent reports and optionally fails.
type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) SendVolumeReport(ctx context.Context, title string, report volume.Report) error {
	f.sent = append(f.sent, title)
	return f.err
}

// fixtureStore serves a fixed row matrix.
type fixtureStore struct {
	rows [][]string
	err  error
}

func (f *fixtureStore) AllRows(ctx context.Context) ([][]string, error) { return f.rows, f.err }
func (f *fixtureStore) HeaderRow(ctx context.Context) ([]string, error) {
	if len(f.rows) == 0 {
		return nil, f.err
	}
	return f.rows[0], f.err
}
func (f *fixtureStore) Column(ctx context.Context, index int) ([]string, error) { return nil, f.err }
func (f *fixtureStore) ColumnFormulas(ctx context.Context, index int) ([]string, error) {
	return nil, f.err
}
func (f *fixtureStore) AppendColumn(ctx context.Context, header string, values []string) error {
	return errors.New("read-only fixture")
}

func snapshotRows(now time.Time) [][]string {
	yesterday := now.AddDate(0, 0, -1)
	return [][]string{
		{
			"Bond", "Link", "Face Value",
			fmt.Sprintf("Snapshot (%s)", yesterday.Format("2006-01-02 15:04")),
			fmt.Sprintf("Snapshot (%s)", now.Format("2006-01-02 15:04")),
		},
		{"A", "", "1000", "100", "90"},
	}
}

func newRunner(rows [][]string, storeErr error, sender *fakeSender) *Runner {
	return &Runner{
		Calculator: &volume.Calculator{
			Store:        &fixtureStore{rows: rows, err: storeErr},
			HeaderPrefix: "Snapshot",
			Location:     testLoc,
			MaxGap:       25 * time.Hour,
		},
		Sender:    sender,
		Windows:   DefaultWindows(),
		Logger:    zap.NewNop(),
		Tolerance: 30 * time.Minute,
	}
}

// go test -v --run TestRunnerSendsDueReports
func TestRunnerSendsDueReports(t *testing.T) {
	now := time.Date(2025, 10, 15, 11, 31, 0, 0, testLoc)
	sender := &fakeSender{}
	runner := newRunner(snapshotRows(time.Date(2025, 10, 15, 11, 0, 0, 0, testLoc)), nil, sender)

	runner.Run(context.Background(), now)

	// 11:31 fires both the daily and the month-to-date report, and
	// both ranges cover the two fixture columns.
	if len(sender.sent) != 2 {
		t.Fatalf("sent = %v, want the 24hr and MTD reports", sender.sent)
	}
	if sender.sent[0] != Daily11AM.Title() || sender.sent[1] != MonthToDate.Title() {
		t.Fatalf("sent = %v, want [%s %s]", sender.sent, Daily11AM.Title(), MonthToDate.Title())
	}
}

// go test -v --run TestRunnerToleranceBoundsEndpointMatch
func TestRunnerToleranceBoundsEndpointMatch(t *testing.T) {
	// 18:31 fires the 6 PM daily report, whose anchors are 18:00
	// yesterday and today. The only snapshots sit at 16:00, two hours
	// off, so a 30 minute tolerance must match nothing.
	now := time.Date(2025, 10, 15, 18, 31, 0, 0, testLoc)
	sender := &fakeSender{}
	runner := newRunner(snapshotRows(time.Date(2025, 10, 15, 16, 0, 0, 0, testLoc)), nil, sender)

	runner.Run(context.Background(), now)

	if len(sender.sent) != 0 {
		t.Fatalf("columns outside tolerance may not produce an alert, got %v", sender.sent)
	}
}

// go test -v --run TestRunnerNoWindowNoSend
func TestRunnerNoWindowNoSend(t *testing.T) {
	now := time.Date(2025, 10, 15, 14, 0, 0, 0, testLoc)
	sender := &fakeSender{}
	runner := newRunner(snapshotRows(now), nil, sender)

	runner.Run(context.Background(), now)

	if len(sender.sent) != 0 {
		t.Fatalf("outside every window nothing may be sent, got %v", sender.sent)
	}
}

// go test -v --run TestRunnerInsufficientDataSendsNothing
func TestRunnerInsufficientDataSendsNothing(t *testing.T) {
	now := time.Date(2025, 10, 15, 11, 31, 0, 0, testLoc)
	sender := &fakeSender{}
	runner := newRunner([][]string{{"Bond", "Link", "Face Value"}}, nil, sender)

	runner.Run(context.Background(), now)

	if len(sender.sent) != 0 {
		t.Fatalf("no usable columns may not produce an alert, got %v", sender.sent)
	}
}

// go test -v --run TestRunnerStoreFailureSendsNothing
func TestRunnerStoreFailureSendsNothing(t *testing.T) {
	now := time.Date(2025, 10, 15, 11, 31, 0, 0, testLoc)
	sender := &fakeSender{}
	runner := newRunner(nil, errors.New("store unreachable"), sender)

	runner.Run(context.Background(), now)

	if len(sender.sent) != 0 {
		t.Fatalf("store failure may not produce an alert, got %v", sender.sent)
	}
}

// go test -v --run TestRunnerSenderFailureIsSwallowed
func TestRunnerSenderFailureIsSwallowed(t *testing.T) {
	now := time.Date(2025, 10, 15, 11, 31, 0, 0, testLoc)
	sender := &fakeSender{err: errors.New("webhook down")}
	runner := newRunner(snapshotRows(time.Date(2025, 10, 15, 11, 0, 0, 0, testLoc)), nil, sender)

	// Must not panic or abort the remaining jobs.
	runner.Run(context.Background(), now)

	if len(sender.sent) == 0 {
		t.Fatal("expected a delivery attempt")
	}
}
