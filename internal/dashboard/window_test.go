package dashboard

import (
	"testing"
	"time"
)

// 2026-03-04 is a Wednesday; the week containing it starts Sunday 2026-03-01.
var wednesday = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func TestResolveWindowThisWeek(t *testing.T) {
	w := ResolveWindow(FilterThisWeek, nil, nil, wednesday)
	if w == nil {
		t.Fatal("expected a window")
	}
	if !w.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v, want Sunday 2026-03-01 00:00", w.From)
	}
	if !w.To.Equal(time.Date(2026, 3, 7, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("To = %v, want Saturday 2026-03-07 23:59:59", w.To)
	}
}

func TestResolveWindowLastWeek(t *testing.T) {
	w := ResolveWindow(FilterLastWeek, nil, nil, wednesday)
	if w == nil {
		t.Fatal("expected a window")
	}
	if !w.From.Equal(time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v, want 2026-02-22", w.From)
	}
	if !w.To.Equal(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("To = %v, want 2026-02-28 23:59:59", w.To)
	}
}

// A week that starts in the previous month relies on time.Date normalising
// the negative day.
func TestResolveWindowWeekAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC) // Wednesday
	w := ResolveWindow(FilterThisWeek, nil, nil, now)
	if w == nil {
		t.Fatal("expected a window")
	}
	if !w.From.Equal(time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v, want Sunday 2026-03-29", w.From)
	}
}

func TestResolveWindowThisMonth(t *testing.T) {
	w := ResolveWindow(FilterThisMonth, nil, nil, wednesday)
	if w == nil {
		t.Fatal("expected a window")
	}
	if !w.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v", w.From)
	}
	if !w.To.Equal(time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("To = %v, want last day of March", w.To)
	}
}

func TestResolveWindowLastMonthInJanuary(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	w := ResolveWindow(FilterLastMonth, nil, nil, now)
	if w == nil {
		t.Fatal("expected a window")
	}
	if !w.From.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v, want December 2025", w.From)
	}
	if !w.To.Equal(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("To = %v, want end of December 2025", w.To)
	}
}

func TestResolveWindowYears(t *testing.T) {
	w := ResolveWindow(FilterThisYear, nil, nil, wednesday)
	if w == nil || w.From.Year() != 2026 || w.To.Year() != 2026 {
		t.Errorf("thisyear window = %+v", w)
	}
	w = ResolveWindow(FilterLastYear, nil, nil, wednesday)
	if w == nil || w.From.Year() != 2025 || w.To.Year() != 2025 {
		t.Errorf("lastyear window = %+v", w)
	}
}

func TestResolveWindowExplicitDatesWin(t *testing.T) {
	from := time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 12, 20, 0, 0, 0, time.UTC)
	w := ResolveWindow(FilterThisWeek, &from, &to, wednesday)
	if w == nil {
		t.Fatal("expected a window")
	}
	if !w.From.Equal(time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("explicit dates should override the period filter, From = %v", w.From)
	}
	if !w.To.Equal(time.Date(2026, 6, 12, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("To = %v", w.To)
	}
}

func TestResolveWindowSingleDateIgnored(t *testing.T) {
	from := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	w := ResolveWindow(FilterThisWeek, &from, nil, wednesday)
	if w == nil {
		t.Fatal("expected the period filter to apply")
	}
	if w.From.Month() != time.March {
		t.Errorf("a lone fromDate should fall back to the filter, From = %v", w.From)
	}
}

func TestResolveWindowUnknownFilter(t *testing.T) {
	if w := ResolveWindow("fortnight", nil, nil, wednesday); w != nil {
		t.Errorf("unknown filter should leave the window open, got %+v", w)
	}
	if w := ResolveWindow("", nil, nil, wednesday); w != nil {
		t.Errorf("empty filter should leave the window open, got %+v", w)
	}
}

func TestBoundsNilWindow(t *testing.T) {
	var w *Window
	from, to := w.Bounds()
	if from != nil || to != nil {
		t.Error("nil window must yield nil bounds")
	}
}
