package alert

import "time"

// JobName identifies one of the configured volume reports.
type JobName string

const (
	Daily11AM   JobName = "daily_11am"   // trailing 24h ending at 11:00
	Daily6PM    JobName = "daily_6pm"    // trailing 24h ending at 18:00
	MonthToDate JobName = "month_to_date"
)

// Window is a time-of-day trigger: its job set fires when the wall
// clock falls inside [FromHour:FromMinute, ToHour:ToMinute). A window
// may cross an hour boundary but not midnight.
type Window struct {
	FromHour   int
	FromMinute int
	ToHour     int
	ToMinute   int
	Jobs       []JobName
}

func (w Window) contains(now time.Time) bool {
	minute := now.Hour()*60 + now.Minute()
	return minute >= w.FromHour*60+w.FromMinute && minute < w.ToHour*60+w.ToMinute
}

// DefaultWindows mirrors the production cron slots: the daily and MTD
// reports at 11:30, the evening report at 18:30.
func DefaultWindows() []Window {
	return []Window{
		{FromHour: 11, FromMinute: 30, ToHour: 11, ToMinute: 35, Jobs: []JobName{Daily11AM, MonthToDate}},
		{FromHour: 18, FromMinute: 30, ToHour: 18, ToMinute: 35, Jobs: []JobName{Daily6PM}},
	}
}

// DueJobs returns the jobs whose window contains now. It is stateless:
// invoking it twice inside the same window fires the jobs twice, and
// avoiding that is the external scheduler's responsibility. Outside
// every window it returns nothing.
func DueJobs(now time.Time, windows []Window) []JobName {
	var due []JobName
	for _, w := range windows {
		if w.contains(now) {
			due = append(due, w.Jobs...)
		}
	}
	return due
}
