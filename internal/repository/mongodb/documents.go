package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kalender/internal/domain"
)

// Collection names match the ones the calendar has always used.
const (
	eventsCollection       = "events"
	participantsCollection = "participants"
)

type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Date        time.Time          `bson:"date"`
	StartTime   string             `bson:"startTime"`
	EndTime     string             `bson:"endTime"`
	Location    string             `bson:"location"`
	Category    string             `bson:"category"`
	SubCategory string             `bson:"subCategory,omitempty"`
	IsAdminOnly bool               `bson:"isAdminOnly"`
	CreatedBy   string             `bson:"createdBy"`
	Notified    bool               `bson:"notified"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func newEventDocument(e *domain.Event) eventDocument {
	return eventDocument{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		Category:    e.Category,
		SubCategory: e.SubCategory,
		IsAdminOnly: e.IsAdminOnly,
		CreatedBy:   e.CreatedBy,
		Notified:    e.Notified,
		CreatedAt:   e.CreatedAt,
	}
}

func (d eventDocument) toDomain() *domain.Event {
	return &domain.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date.UTC(),
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Location:    d.Location,
		Category:    d.Category,
		SubCategory: d.SubCategory,
		IsAdminOnly: d.IsAdminOnly,
		CreatedBy:   d.CreatedBy,
		Notified:    d.Notified,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// participationDocument also reads the older per-category layout
// (khuddamCount, ansarCount, ... and timestamp) so existing records aggregate.
type participationDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	EventID             primitive.ObjectID `bson:"eventId"`
	UserID              string             `bson:"userId"`
	ParticipantName     string             `bson:"participantName,omitempty"`
	ParticipantCategory string             `bson:"participantCategory,omitempty"`
	ParticipantCount    int                `bson:"participantCount,omitempty"`
	CategoryCounts      map[string]int     `bson:"categoryCounts,omitempty"`
	TotalCount          int                `bson:"totalCount"`
	DedupeKey           string             `bson:"dedupeKey,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt,omitempty"`

	KhuddamCount int       `bson:"khuddamCount,omitempty"`
	AnsarCount   int       `bson:"ansarCount,omitempty"`
	AtfalCount   int       `bson:"atfalCount,omitempty"`
	LajnaCount   int       `bson:"lajnaCount,omitempty"`
	NasiratCount int       `bson:"nasiratCount,omitempty"`
	KinderCount  int       `bson:"kinderCount,omitempty"`
	Timestamp    time.Time `bson:"timestamp,omitempty"`
}

func newParticipationDocument(p *domain.Participation, eventID primitive.ObjectID) participationDocument {
	doc := participationDocument{
		EventID:             eventID,
		UserID:              p.UserID,
		ParticipantName:     p.ParticipantName,
		ParticipantCategory: p.ParticipantCategory,
		ParticipantCount:    p.ParticipantCount,
		TotalCount:          p.TotalCount,
		DedupeKey:           p.DedupeKey,
		CreatedAt:           p.CreatedAt,
	}
	if p.HasBreakdown() {
		doc.CategoryCounts = map[string]int(p.Breakdown)
	}
	return doc
}

func (d participationDocument) toDomain() *domain.Participation {
	p := &domain.Participation{
		ID:                  d.ID.Hex(),
		EventID:             d.EventID.Hex(),
		UserID:              d.UserID,
		ParticipantName:     d.ParticipantName,
		ParticipantCategory: d.ParticipantCategory,
		ParticipantCount:    d.ParticipantCount,
		TotalCount:          d.TotalCount,
		DedupeKey:           d.DedupeKey,
		CreatedAt:           d.CreatedAt.UTC(),
	}
	if len(d.CategoryCounts) > 0 {
		p.Breakdown = domain.CategoryCounts(d.CategoryCounts)
	} else if legacy := d.legacyCounts(); len(legacy) > 0 {
		p.Breakdown = legacy
	}
	if p.HasBreakdown() {
		p.TotalCount = p.Breakdown.Total()
	} else if p.ParticipantCategory != "" {
		p.TotalCount = p.ParticipantCount
	}
	if p.CreatedAt.IsZero() && !d.Timestamp.IsZero() {
		p.CreatedAt = d.Timestamp.UTC()
	}
	return p
}

func (d participationDocument) legacyCounts() domain.CategoryCounts {
	counts := domain.CategoryCounts{}
	for label, n := range map[string]int{
		domain.CategoryKhuddam: d.KhuddamCount,
		domain.CategoryAnsar:   d.AnsarCount,
		domain.CategoryAtfal:   d.AtfalCount,
		domain.CategoryLajna:   d.LajnaCount,
		domain.CategoryNasirat: d.NasiratCount,
		domain.CategoryKinder:  d.KinderCount,
	} {
		if n > 0 {
			counts[label] = n
		}
	}
	return counts
}

// eventQuery translates filter into a Mongo query document. Documents without
// isAdminOnly count as public.
func eventQuery(filter domain.EventFilter) bson.M {
	q := bson.M{}
	if !filter.IncludeAdminOnly {
		q["isAdminOnly"] = bson.M{"$ne": true}
	}
	date := bson.M{}
	if filter.From != nil {
		date["$gte"] = *filter.From
	}
	if filter.To != nil {
		date["$lte"] = *filter.To
	}
	if filter.Before != nil {
		date["$lt"] = *filter.Before
	}
	if len(date) > 0 {
		q["date"] = date
	}
	return q
}
