package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kalender/internal/domain"
)

type participationService struct {
	eventRepo         domain.EventRepository
	participationRepo domain.ParticipationRepository
	allowResubmission bool
	logger            *slog.Logger
	contextTimeout    time.Duration
}

// NewParticipationService creates a ParticipationService. When allowResubmission
// is false a user can submit at most one participation per event; the store's
// uniqueness constraint on the dedupe key enforces it.
func NewParticipationService(
	eventRepo domain.EventRepository,
	participationRepo domain.ParticipationRepository,
	allowResubmission bool,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ParticipationService {
	return &participationService{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		allowResubmission: allowResubmission,
		logger:            logger,
		contextTimeout:    timeout,
	}
}

func (s *participationService) RecordParticipation(ctx context.Context, p *domain.Participation) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := p.Normalize(); err != nil {
		return err
	}

	// Ensure the event exists so no orphaned aggregates are created.
	if _, err := s.eventRepo.GetByID(ctx, p.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	p.DedupeKey = ""
	if !s.allowResubmission {
		p.DedupeKey = domain.ParticipationDedupeKey(p.EventID, p.UserID)
	}
	p.CreatedAt = time.Now().UTC()

	if err := s.participationRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateParticipation) {
			s.logger.InfoContext(ctx, "duplicate participation rejected", "event_id", p.EventID, "user_id", p.UserID)
			return domain.ErrDuplicateParticipation
		}
		return fmt.Errorf("create participation: %w", err)
	}
	s.logger.InfoContext(ctx, "participation recorded",
		"event_id", p.EventID,
		"participation_id", p.ID,
		"total", p.TotalCount,
	)
	return nil
}

func (s *participationService) ListParticipants(ctx context.Context, eventID string) ([]*domain.Participation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	parts, err := s.participationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	if parts == nil {
		parts = []*domain.Participation{}
	}
	return parts, nil
}
