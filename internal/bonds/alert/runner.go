package alert

import (
	"context"
	"errors"
	"time"

	"bondwatch/internal/bonds/volume"

	"go.uber.org/zap"
)

// ReportSender delivers a finished volume report.
type ReportSender interface {
	SendVolumeReport(ctx context.Context, title string, report volume.Report) error
}

// Runner executes one alert invocation: it asks the dispatch table
// which jobs are due, computes each one's volume report, and hands the
// result to the sender. A job that cannot produce a report sends
// nothing; a sender failure is logged and dropped.
type Runner struct {
	Calculator *volume.Calculator
	Sender     ReportSender
	Windows    []Window
	Logger     *zap.Logger

	// Tolerance bounds how far a snapshot column may sit from a daily
	// job's anchor times and still count as its endpoint.
	Tolerance time.Duration
}

// Run performs a single invocation at the given wall clock time.
// Outside every configured window it is a no-op.
func (r *Runner) Run(ctx context.Context, now time.Time) {
	jobs := DueJobs(now, r.Windows)
	if len(jobs) == 0 {
		r.Logger.Info("no alert due",
			zap.Int("hour", now.Hour()),
			zap.Int("minute", now.Minute()))
		return
	}

	for _, job := range jobs {
		r.runJob(ctx, job, now)
	}
}

func (r *Runner) runJob(ctx context.Context, job JobName, now time.Time) {
	start, end := job.TimeRange(now)
	r.Logger.Info("computing volume report",
		zap.String("job", string(job)),
		zap.Time("start", start),
		zap.Time("end", end))

	// Cumulative jobs sum every interval in range; daily jobs diff the
	// columns closest to the two anchors, within tolerance.
	var report volume.Report
	var err error
	if job.Cumulative() {
		report, err = r.Calculator.Range(ctx, start, end)
	} else {
		report, err = r.Calculator.Between(ctx, start, end, r.Tolerance)
	}
	if errors.Is(err, volume.ErrInsufficientData) {
		r.Logger.Warn("insufficient snapshot data, skipping alert",
			zap.String("job", string(job)))
		return
	}
	if err != nil {
		r.Logger.Error("volume calculation failed",
			zap.String("job", string(job)), zap.Error(err))
		return
	}

	r.Logger.Info("volume report ready",
		zap.String("job", string(job)),
		zap.Float64("net_change", report.NetChange),
		zap.Int("bonds", report.Entities),
		zap.Int("intervals", len(report.Intervals)))

	if err := r.Sender.SendVolumeReport(ctx, job.Title(), report); err != nil {
		r.Logger.Error("failed to deliver alert",
			zap.String("job", string(job)), zap.Error(err))
	}
}
