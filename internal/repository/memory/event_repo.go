// Package memory implements the repositories in process memory. It backs the
// "memory" store driver and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"kalender/internal/domain"
)

type eventRepository struct {
	mu     sync.RWMutex
	order  []string
	events map[string]*domain.Event
}

func NewEventRepository() domain.EventRepository {
	return &eventRepository{
		events: make(map[string]*domain.Event),
	}
}

func (r *eventRepository) Create(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = uuid.NewString()
	stored := *e
	r.events[e.ID] = &stored
	r.order = append(r.order, e.ID)
	return nil
}

func (r *eventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (r *eventRepository) List(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*domain.Event, 0, len(r.order))
	for _, id := range r.order {
		e := r.events[id]
		if !filter.Matches(e) {
			continue
		}
		out := *e
		events = append(events, &out)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (r *eventRepository) Update(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *e
	r.events[e.ID] = &stored
	return nil
}

func (r *eventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
