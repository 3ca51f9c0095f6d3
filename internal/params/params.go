package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hopskip/internal/capacity"
)

const dateLayout = "2006-01-02"

// Pagination holds pagination info and computed metadata.
type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePagination parses ?limit=...&page=... safely; keys are case sensitive.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Limit: 25,
		Page:  1,
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = 25
			case limit > 100:
				p.Limit = 100
			default:
				p.Limit = limit
			}
		}
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta fills the derived fields once the total row count is known.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1
}

// ParseCapacityFilter reads the capacity-report query parameters. Malformed
// numbers and dates are ignored rather than rejected; an unfiltered report
// is the fallback for a bad filter value.
func ParseCapacityFilter(q url.Values) capacity.Filter {
	f := capacity.Filter{
		StudentName: strings.TrimSpace(q.Get("studentName")),
		VenueName:   strings.TrimSpace(q.Get("venueName")),
		Status:      strings.TrimSpace(q.Get("status")),
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(q.Get("venueId")), 10, 64); err == nil && id > 0 {
		f.VenueID = id
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(q.Get("bookedBy")), 10, 64); err == nil && id > 0 {
		f.BookedBy = id
	}

	f.TrialDate = ParseDate(q.Get("trialDate"))
	f.FromDate = ParseDate(q.Get("fromDate"))
	f.ToDate = ParseDate(q.Get("toDate"))
	return f
}

// ParseDate parses a yyyy-mm-dd value in server-local time, nil when absent
// or malformed.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}
