package domain

import (
	"context"
	"time"
)

// EventSummary is the subset of event fields reported alongside statistics.
type EventSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory,omitempty"`
}

// NewEventSummary returns the summary of e.
func NewEventSummary(e *Event) EventSummary {
	return EventSummary{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Category:    e.Category,
		SubCategory: e.SubCategory,
	}
}

// EventStatistics aggregates the participation of one event.
// swagger:model EventStatistics
type EventStatistics struct {
	Event             EventSummary     `json:"event"`
	Participants      []*Participation `json:"participants"`
	CategoryCount     CategoryCounts   `json:"categoryCount"`
	TotalParticipants int              `json:"totalParticipants"`
}

// StatisticsService computes per-category participation totals.
type StatisticsService interface {
	ComputeStatistics(ctx context.Context, eventID string) (*EventStatistics, error)
	// ComputeAllStatistics covers every event, admin-only included, ordered by date ascending.
	ComputeAllStatistics(ctx context.Context) ([]*EventStatistics, error)
}
