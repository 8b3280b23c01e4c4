package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kalender/internal/domain"
)

type statisticsService struct {
	eventRepo         domain.EventRepository
	participationRepo domain.ParticipationRepository
	contextTimeout    time.Duration
}

// NewStatisticsService creates a StatisticsService over the given repositories.
func NewStatisticsService(
	eventRepo domain.EventRepository,
	participationRepo domain.ParticipationRepository,
	timeout time.Duration,
) domain.StatisticsService {
	return &statisticsService{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		contextTimeout:    timeout,
	}
}

func (s *statisticsService) ComputeStatistics(ctx context.Context, eventID string) (*domain.EventStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	parts, err := s.participationRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	return Aggregate(event, parts), nil
}

func (s *statisticsService) ComputeAllStatistics(ctx context.Context) ([]*domain.EventStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, domain.EventFilter{IncludeAdminOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	// One participation query per event (N+1); event counts are small.
	stats := make([]*domain.EventStatistics, 0, len(events))
	for _, event := range events {
		parts, err := s.participationRepo.ListByEventID(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("list participations for event %s: %w", event.ID, err)
		}
		stats = append(stats, Aggregate(event, parts))
	}
	return stats, nil
}

// Aggregate sums the contributions of parts per category label. Labels are
// taken from the records as-is, so unknown categories are reported too.
func Aggregate(event *domain.Event, parts []*domain.Participation) *domain.EventStatistics {
	if parts == nil {
		parts = []*domain.Participation{}
	}
	counts := make(domain.CategoryCounts)
	total := 0
	for _, p := range parts {
		for label, n := range p.Contributions() {
			counts[label] += n
			total += n
		}
	}
	return &domain.EventStatistics{
		Event:             domain.NewEventSummary(event),
		Participants:      parts,
		CategoryCount:     counts,
		TotalParticipants: total,
	}
}
