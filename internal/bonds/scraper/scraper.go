package scraper

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bondwatch/pkg/sheets"
	"bondwatch/pkg/storage/postgres"

	"go.uber.org/zap"
)

// nameColumn is the fixed sheet column holding the bond name (column A).
const nameColumn = 1

// Job is one scrape invocation: read the bond links from the sheet,
// fetch every page's unit limit, append one timestamped snapshot
// column, and archive the counts to Postgres.
type Job struct {
	Store        sheets.Store
	Fetcher      UnitFetcher
	Archive      *postgres.PostgresClient // optional; nil disables archiving
	HeaderPrefix string
	Location     *time.Location
	Delay        time.Duration // politeness delay between page fetches
	Logger       *zap.Logger
}

// Run performs one complete scrape. Pages that fail to fetch leave a
// blank cell; the sheet column is written even when some fetches fail,
// so a partial snapshot is still a snapshot.
func (j *Job) Run(ctx context.Context) error {
	capturedAt := time.Now().In(j.Location).Truncate(time.Minute)

	urls, err := BondLinks(ctx, j.Store)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no bond links in sheet")
	}

	names, err := j.Store.Column(ctx, nameColumn)
	if err != nil {
		return fmt.Errorf("read bond names: %w", err)
	}

	// Fetch each distinct URL once; rows sharing a link share the
	// result.
	fetched := make(map[string]fetchResult)

	values := make([]string, len(urls))
	for i, url := range urls {
		if url == "" {
			continue
		}

		result, seen := fetched[url]
		if !seen {
			if len(fetched) > 0 && j.Delay > 0 {
				select {
				case <-time.After(j.Delay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			units, found, err := j.Fetcher.FetchUnitLimit(ctx, url)
			if err != nil {
				j.Logger.Warn("failed to scrape bond page",
					zap.String("url", url), zap.Error(err))
				found = false
			}
			result = fetchResult{units: units, found: found}
			fetched[url] = result
		}

		if result.found {
			values[i] = strconv.Itoa(result.units)
		}

		j.archive(ctx, rowName(names, i), url, result, capturedAt)
	}

	header := fmt.Sprintf("%s (%s)", j.HeaderPrefix, capturedAt.Format("2006-01-02 15:04"))
	if err := j.Store.AppendColumn(ctx, header, values); err != nil {
		return fmt.Errorf("write snapshot column: %w", err)
	}

	j.Logger.Info("snapshot recorded",
		zap.String("header", header),
		zap.Int("rows", len(values)),
		zap.Int("pages", len(fetched)))
	return nil
}

type fetchResult struct {
	units int
	found bool
}

func (j *Job) archive(ctx context.Context, bond, url string, result fetchResult, capturedAt time.Time) {
	if j.Archive == nil || bond == "" {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	record := &postgres.SnapshotRecord{
		Bond:       bond,
		URL:        url,
		Units:      result.units,
		Found:      result.found,
		CapturedAt: capturedAt,
	}
	if err := j.Archive.InsertSnapshot(dbCtx, record); err != nil {
		j.Logger.Warn("failed to archive snapshot",
			zap.String("bond", bond), zap.Error(err))
	}
}

func rowName(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}

// Loop runs the job immediately and then once per interval. It blocks
// until the context is cancelled.
func (j *Job) Loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := j.Run(ctx); err != nil {
			j.Logger.Error("scrape job failed", zap.Error(err))
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
