package controllers

import (
	"net/http"
	"strings"
	"time"

	"kalender/internal/domain"
)

const dateOnlyLayout = "2006-01-02"

const dateFormatMessage = "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"

// parseDate accepts YYYY-MM-DD (midnight UTC) or an RFC 3339 timestamp.
// dateOnly reports which form was given.
func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(dateOnlyLayout, s); err == nil {
		return d, true, nil
	}
	t, err = time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}

// parseEventFilter reads the optional startDate and endDate query parameters.
// A date-only endDate includes the whole day and becomes an exclusive bound at
// the next midnight.
func parseEventFilter(r *http.Request, includeAdminOnly bool) (domain.EventFilter, error) {
	filter := domain.EventFilter{IncludeAdminOnly: includeAdminOnly}
	q := r.URL.Query()
	if s := q.Get("startDate"); s != "" {
		from, _, err := parseDate(s)
		if err != nil {
			return filter, domain.Invalid("startDate", dateFormatMessage)
		}
		filter.From = &from
	}
	if s := q.Get("endDate"); s != "" {
		to, dateOnly, err := parseDate(s)
		if err != nil {
			return filter, domain.Invalid("endDate", dateFormatMessage)
		}
		if dateOnly {
			before := to.AddDate(0, 0, 1)
			filter.Before = &before
		} else {
			filter.To = &to
		}
	}
	return filter, nil
}
