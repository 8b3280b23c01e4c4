package services

import (
	"context"
	"errors"
	"testing"

	"kalender/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipationService_RecordParticipation(t *testing.T) {
	ctx := context.Background()
	s := newStores()
	events := s.eventService()
	svc := NewParticipationService(s.events, s.parts, false, testLogger, testTimeout)

	e := validEvent()
	require.NoError(t, events.CreateEvent(ctx, e))

	p := &domain.Participation{EventID: e.ID, UserID: "u1", ParticipantName: "Ahmad", ParticipantCategory: domain.CategoryAnsar}
	require.NoError(t, svc.RecordParticipation(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, 1, p.ParticipantCount)
	assert.Equal(t, 1, p.TotalCount)

	t.Run("duplicate rejected", func(t *testing.T) {
		again := &domain.Participation{EventID: e.ID, UserID: "u1", ParticipantName: "Ahmad", ParticipantCategory: domain.CategoryAnsar, ParticipantCount: 3}
		err := svc.RecordParticipation(ctx, again)
		assert.True(t, errors.Is(err, domain.ErrDuplicateParticipation))

		list, err := svc.ListParticipants(ctx, e.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1, "exactly one record for the pair")
	})

	t.Run("other user accepted", func(t *testing.T) {
		other := &domain.Participation{EventID: e.ID, UserID: "u2", Breakdown: domain.CategoryCounts{domain.CategoryLajna: 2}}
		require.NoError(t, svc.RecordParticipation(ctx, other))
		assert.Equal(t, 2, other.TotalCount)
	})

	t.Run("unknown event", func(t *testing.T) {
		err := svc.RecordParticipation(ctx, &domain.Participation{EventID: "missing", UserID: "u1", ParticipantName: "A", ParticipantCategory: "Ansar"})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("validation", func(t *testing.T) {
		err := svc.RecordParticipation(ctx, &domain.Participation{EventID: e.ID, UserID: "u3"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "participantName", verr.Field)
	})
}

func TestParticipationService_AllowResubmission(t *testing.T) {
	ctx := context.Background()
	s := newStores()
	events := s.eventService()
	svc := NewParticipationService(s.events, s.parts, true, testLogger, testTimeout)

	e := validEvent()
	require.NoError(t, events.CreateEvent(ctx, e))

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordParticipation(ctx, &domain.Participation{
			EventID: e.ID, UserID: "u1", ParticipantName: "Ahmad", ParticipantCategory: domain.CategoryKhuddam, ParticipantCount: 2,
		}))
	}
	list, err := svc.ListParticipants(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestParticipationService_ListParticipantsUnknownEvent(t *testing.T) {
	s := newStores()
	svc := NewParticipationService(s.events, s.parts, false, testLogger, testTimeout)

	list, err := svc.ListParticipants(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
