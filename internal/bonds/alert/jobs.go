package alert

import "time"

// Job titles as they appear in the Slack message.
var jobTitles = map[JobName]string{
	Daily11AM:   "24hr Volume Report (11 AM - 11 AM)",
	Daily6PM:    "24hr Volume Report (6 PM - 6 PM)",
	MonthToDate: "Month-to-Date (MTD) Volume Report",
}

// Cumulative reports whether the job sums every snapshot interval in
// its range rather than diffing the two endpoint snapshots.
func (j JobName) Cumulative() bool {
	return j == MonthToDate
}

// Title returns the human-readable alert title for a job.
func (j JobName) Title() string {
	if title, ok := jobTitles[j]; ok {
		return title
	}
	return string(j)
}

// TimeRange resolves the snapshot range a job covers at the given wall
// clock time. Anchors land on the job's reference hour; when the clock
// has not yet passed the half-hour after that anchor, the range rolls
// back a full day so the report never covers a snapshot that has not
// been taken yet.
func (j JobName) TimeRange(now time.Time) (start, end time.Time) {
	switch j {
	case Daily6PM:
		end = anchor(now, 18)
		if before(now, 18, 30) {
			end = end.AddDate(0, 0, -1)
		}
		return end.AddDate(0, 0, -1), end

	case MonthToDate:
		end = anchor(now, 11)
		if before(now, 11, 30) {
			end = end.AddDate(0, 0, -1)
		}
		start = time.Date(now.Year(), now.Month(), 1, 11, 0, 0, 0, now.Location())
		return start, end

	default: // Daily11AM
		end = anchor(now, 11)
		if before(now, 11, 30) {
			end = end.AddDate(0, 0, -1)
		}
		return end.AddDate(0, 0, -1), end
	}
}

// anchor is today's date at hour:00 in now's location.
func anchor(now time.Time, hour int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
}

// before reports whether now is earlier than hour:minute on its day.
func before(now time.Time, hour, minute int) bool {
	return now.Hour() < hour || (now.Hour() == hour && now.Minute() < minute)
}
