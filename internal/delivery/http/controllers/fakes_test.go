package controllers

import (
	"context"
	"io"
	"log/slog"

	"kalender/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	listResult  []*domain.Event
	listErr     error
	getResult   *domain.Event
	getErr      error
	createErr   error
	updateErr   error
	updateEvent *domain.Event
	deleteErr   error

	lastFilter   domain.EventFilter
	lastGetID    string
	lastCreate   *domain.Event
	lastUpdateID string
	lastPatch    domain.EventPatch
	lastDeleteID string
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult == nil {
		return []*domain.Event{}, nil
	}
	return f.listResult, nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	f.lastGetID = id
	return f.getResult, f.getErr
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreate = event
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-created"
	return nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastUpdateID = id
	f.lastPatch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateEvent, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	f.lastDeleteID = id
	return f.deleteErr
}

// fakeParticipationService implements domain.ParticipationService for handler tests.
type fakeParticipationService struct {
	recordErr  error
	listResult []*domain.Participation
	listErr    error

	lastRecord *domain.Participation
	lastListID string
}

func (f *fakeParticipationService) RecordParticipation(ctx context.Context, p *domain.Participation) error {
	f.lastRecord = p
	if f.recordErr != nil {
		return f.recordErr
	}
	if err := p.Normalize(); err != nil {
		return err
	}
	p.ID = "p-created"
	return nil
}

func (f *fakeParticipationService) ListParticipants(ctx context.Context, eventID string) ([]*domain.Participation, error) {
	f.lastListID = eventID
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult == nil {
		return []*domain.Participation{}, nil
	}
	return f.listResult, nil
}

// fakeStatisticsService implements domain.StatisticsService for handler tests.
type fakeStatisticsService struct {
	one    *domain.EventStatistics
	oneErr error
	all    []*domain.EventStatistics
	allErr error

	lastID string
}

func (f *fakeStatisticsService) ComputeStatistics(ctx context.Context, eventID string) (*domain.EventStatistics, error) {
	f.lastID = eventID
	return f.one, f.oneErr
}

func (f *fakeStatisticsService) ComputeAllStatistics(ctx context.Context) ([]*domain.EventStatistics, error) {
	return f.all, f.allErr
}
