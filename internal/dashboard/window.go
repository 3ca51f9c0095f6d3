package dashboard

import "time"

// Recognised period filters. An unrecognised filter leaves the window open,
// matching the fallthrough the consumers rely on.
const (
	FilterThisMonth = "thismonth"
	FilterLastMonth = "lastmonth"
	FilterThisWeek  = "thisweek"
	FilterLastWeek  = "lastweek"
	FilterThisYear  = "thisyear"
	FilterLastYear  = "lastyear"
)

// Window is an inclusive created_at range in server-local time. Weeks start
// on Sunday and boundaries are computed by day arithmetic, not a calendar
// library, so there is no timezone normalisation.
type Window struct {
	From time.Time
	To   time.Time
}

// ResolveWindow picks the date window for a stats query. Explicit dates win:
// when both fromDate and toDate are present, filterType is ignored and the
// pair is expanded to full-day bounds. Returns nil when nothing bounds the
// query.
func ResolveWindow(filterType string, fromDate, toDate *time.Time, now time.Time) *Window {
	if fromDate != nil && toDate != nil {
		return &Window{
			From: startOfDay(*fromDate),
			To:   endOfDay(*toDate),
		}
	}

	switch filterType {
	case FilterThisWeek:
		start := startOfWeek(now)
		return &Window{From: start, To: endOfDay(start.AddDate(0, 0, 6))}
	case FilterLastWeek:
		start := startOfWeek(now).AddDate(0, 0, -7)
		return &Window{From: start, To: endOfDay(start.AddDate(0, 0, 6))}
	case FilterThisMonth:
		return &Window{
			From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
			To:   endOfDay(time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())),
		}
	case FilterLastMonth:
		return &Window{
			From: time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location()),
			To:   endOfDay(time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location())),
		}
	case FilterThisYear:
		return &Window{
			From: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
			To:   endOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())),
		}
	case FilterLastYear:
		return &Window{
			From: time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location()),
			To:   endOfDay(time.Date(now.Year()-1, time.December, 31, 0, 0, 0, 0, now.Location())),
		}
	default:
		return nil
	}
}

// startOfWeek is the Sunday on or before t. time.Date normalises an
// out-of-range day, so day-of-month minus weekday works across month starts.
func startOfWeek(t time.Time) time.Time {
	day := t.Day() - int(t.Weekday())
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// Bounds unpacks a possibly-nil window into the pointer pair the stores take.
func (w *Window) Bounds() (*time.Time, *time.Time) {
	if w == nil {
		return nil, nil
	}
	return &w.From, &w.To
}
