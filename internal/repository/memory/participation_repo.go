package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"kalender/internal/domain"
)

type participationRepository struct {
	mu      sync.RWMutex
	records []*domain.Participation
	dedupe  map[string]struct{}
}

func NewParticipationRepository() domain.ParticipationRepository {
	return &participationRepository{
		dedupe: make(map[string]struct{}),
	}
}

func clone(p *domain.Participation) *domain.Participation {
	out := *p
	if p.Breakdown != nil {
		out.Breakdown = make(domain.CategoryCounts, len(p.Breakdown))
		for k, v := range p.Breakdown {
			out.Breakdown[k] = v
		}
	}
	return &out
}

func (r *participationRepository) Create(_ context.Context, p *domain.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.DedupeKey != "" {
		if _, exists := r.dedupe[p.DedupeKey]; exists {
			return domain.ErrDuplicateParticipation
		}
		r.dedupe[p.DedupeKey] = struct{}{}
	}
	p.ID = uuid.NewString()
	r.records = append(r.records, clone(p))
	return nil
}

func (r *participationRepository) ListByEventID(_ context.Context, eventID string) ([]*domain.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Participation, 0)
	for _, p := range r.records {
		if p.EventID == eventID {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (r *participationRepository) DeleteByEventID(_ context.Context, eventID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	var removed int64
	for _, p := range r.records {
		if p.EventID == eventID {
			if p.DedupeKey != "" {
				delete(r.dedupe, p.DedupeKey)
			}
			removed++
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(r.records); i++ {
		r.records[i] = nil
	}
	r.records = kept
	return removed, nil
}
