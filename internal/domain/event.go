package domain

import (
	"context"
	"strings"
	"time"
)

// Defaults applied to events created without the corresponding field.
const (
	DefaultStartTime = "19:00"
	DefaultEndTime   = "21:00"
	DefaultLocation  = "Freiburg Moschee"
)

// Event represents a calendar event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory,omitempty"`
	IsAdminOnly bool      `json:"isAdminOnly"`
	CreatedBy   string    `json:"createdBy"`
	Notified    bool      `json:"notified"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ApplyDefaults trims text fields and fills in the default times and venue.
func (e *Event) ApplyDefaults() {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	if strings.TrimSpace(e.StartTime) == "" {
		e.StartTime = DefaultStartTime
	}
	if strings.TrimSpace(e.EndTime) == "" {
		e.EndTime = DefaultEndTime
	}
	if strings.TrimSpace(e.Location) == "" {
		e.Location = DefaultLocation
	}
}

// Validate checks the required fields. The first missing field is reported.
func (e *Event) Validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return Required("title")
	case e.Date.IsZero():
		return Required("date")
	case strings.TrimSpace(e.Category) == "":
		return Required("category")
	case strings.TrimSpace(e.CreatedBy) == "":
		return Required("createdBy")
	}
	return nil
}

// EventFilter restricts ListEvents. From and To are inclusive, Before is
// exclusive; nil means unbounded. A date-only upper bound is carried as Before,
// the following midnight.
type EventFilter struct {
	From             *time.Time
	To               *time.Time
	Before           *time.Time
	IncludeAdminOnly bool
}

// Inverted reports whether the lower bound lies past an upper bound.
func (f EventFilter) Inverted() bool {
	if f.From == nil {
		return false
	}
	if f.To != nil && f.To.Before(*f.From) {
		return true
	}
	return f.Before != nil && !f.Before.After(*f.From)
}

// Matches reports whether e passes the filter.
func (f EventFilter) Matches(e *Event) bool {
	if !f.IncludeAdminOnly && e.IsAdminOnly {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	if f.Before != nil && !e.Date.Before(*f.Before) {
		return false
	}
	return true
}

// EventPatch holds the fields of a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Location    *string
	Category    *string
	SubCategory *string
	IsAdminOnly *bool
	CreatedBy   *string
	Notified    *bool
}

// Apply merges the patch into e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		e.Description = strings.TrimSpace(*p.Description)
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.SubCategory != nil {
		e.SubCategory = *p.SubCategory
	}
	if p.IsAdminOnly != nil {
		e.IsAdminOnly = *p.IsAdminOnly
	}
	if p.CreatedBy != nil {
		e.CreatedBy = *p.CreatedBy
	}
	if p.Notified != nil {
		e.Notified = *p.Notified
	}
}

// EventRepository defines the interface for event storage.
// List must return events sorted by date ascending.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for calendar events.
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
	// DeleteEvent removes the event and every participation that references it.
	DeleteEvent(ctx context.Context, id string) error
}
