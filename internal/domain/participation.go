package domain

import (
	"context"
	"strings"
	"time"
)

// Membership categories known to the community. Participation labels are not
// restricted to these; any label is accepted and aggregated as-is.
const (
	CategoryKhuddam = "Khuddam"
	CategoryAnsar   = "Ansar"
	CategoryAtfal   = "Atfal"
	CategoryLajna   = "Lajna"
	CategoryNasirat = "Nasirat"
	CategoryKinder  = "Kinder"
)

// CategoryCounts maps a category label to a headcount.
type CategoryCounts map[string]int

// Total returns the sum of all counts.
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Participation is one submitted headcount for an event.
//
// A record uses one of two shapes: a single ParticipantCategory with a
// ParticipantCount, or a Breakdown of counts per category. TotalCount is
// always the record's own contribution.
// swagger:model Participation
type Participation struct {
	ID                  string         `json:"id"`
	EventID             string         `json:"eventId"`
	UserID              string         `json:"userId"`
	ParticipantName     string         `json:"participantName,omitempty"`
	ParticipantCategory string         `json:"participantCategory,omitempty"`
	ParticipantCount    int            `json:"participantCount,omitempty"`
	Breakdown           CategoryCounts `json:"categoryCounts,omitempty"`
	TotalCount          int            `json:"totalCount"`
	CreatedAt           time.Time      `json:"createdAt"`

	// DedupeKey is set when resubmissions are rejected. Stores enforce it as unique.
	DedupeKey string `json:"-"`
}

// HasBreakdown reports whether the record uses the per-category shape.
func (p *Participation) HasBreakdown() bool {
	return len(p.Breakdown) > 0
}

// Contributions returns the headcount this record adds per category. Zero
// counts and an unlabelled single-category record contribute nothing.
func (p *Participation) Contributions() CategoryCounts {
	out := CategoryCounts{}
	if p.HasBreakdown() {
		for label, n := range p.Breakdown {
			if n != 0 {
				out[label] = n
			}
		}
		return out
	}
	if p.ParticipantCategory != "" && p.ParticipantCount != 0 {
		out[p.ParticipantCategory] = p.ParticipantCount
	}
	return out
}

// Normalize validates the record and fixes up derived fields: zero-count
// entries are dropped from the breakdown, a missing single-category count
// becomes 1, and TotalCount is set to the record's contribution. A non-zero
// TotalCount supplied by the caller must agree with the breakdown.
func (p *Participation) Normalize() error {
	p.EventID = strings.TrimSpace(p.EventID)
	p.UserID = strings.TrimSpace(p.UserID)
	p.ParticipantName = strings.TrimSpace(p.ParticipantName)
	p.ParticipantCategory = strings.TrimSpace(p.ParticipantCategory)

	if p.EventID == "" {
		return Required("eventId")
	}
	if p.UserID == "" {
		return Required("userId")
	}

	if p.HasBreakdown() {
		cleaned := make(CategoryCounts, len(p.Breakdown))
		for label, n := range p.Breakdown {
			label = strings.TrimSpace(label)
			if label == "" {
				return Invalid("categoryCounts", "must not contain an empty category")
			}
			if n < 0 {
				return Invalid("categoryCounts", "must not be negative")
			}
			if n > 0 {
				cleaned[label] += n
			}
		}
		sum := cleaned.Total()
		if p.TotalCount != 0 && p.TotalCount != sum {
			return Invalid("totalCount", "does not match the sum of category counts")
		}
		if sum == 0 {
			return Invalid("categoryCounts", "must contain at least one participant")
		}
		p.Breakdown = cleaned
		p.TotalCount = sum
		return nil
	}

	if p.ParticipantName == "" {
		return Required("participantName")
	}
	if p.ParticipantCategory == "" {
		return Required("participantCategory")
	}
	if p.ParticipantCount < 0 {
		return Invalid("participantCount", "must not be negative")
	}
	if p.ParticipantCount == 0 {
		p.ParticipantCount = 1
	}
	p.TotalCount = p.ParticipantCount
	return nil
}

// ParticipationDedupeKey returns the uniqueness key for one user's submission to one event.
func ParticipationDedupeKey(eventID, userID string) string {
	return eventID + ":" + userID
}

// ParticipationRepository defines storage for participation records.
// Create returns ErrDuplicateParticipation when DedupeKey collides with an existing record.
type ParticipationRepository interface {
	Create(ctx context.Context, p *Participation) error
	ListByEventID(ctx context.Context, eventID string) ([]*Participation, error)
	DeleteByEventID(ctx context.Context, eventID string) (int64, error)
}

// ParticipationService records and lists participation for events.
type ParticipationService interface {
	RecordParticipation(ctx context.Context, p *Participation) error
	ListParticipants(ctx context.Context, eventID string) ([]*Participation, error)
}
