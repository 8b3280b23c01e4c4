package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"kalender/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

type participationRepository struct {
	DB *sql.DB
}

func NewParticipationRepository(db *sql.DB) domain.ParticipationRepository {
	return &participationRepository{
		DB: db,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *participationRepository) Create(ctx context.Context, p *domain.Participation) error {
	var breakdown any
	if p.HasBreakdown() {
		b, err := json.Marshal(p.Breakdown)
		if err != nil {
			return fmt.Errorf("encode category counts: %w", err)
		}
		breakdown = string(b)
	}
	query := `
		INSERT INTO participations (event_id, user_id, participant_name, participant_category, participant_count, category_counts, total_count, dedupe_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.EventID, p.UserID, nullString(p.ParticipantName), nullString(p.ParticipantCategory),
		p.ParticipantCount, breakdown, p.TotalCount, nullString(p.DedupeKey), p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateParticipation
		}
		return err
	}
	return nil
}

func (r *participationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participation, error) {
	query := `
		SELECT id, event_id, user_id, participant_name, participant_category, participant_count, category_counts, total_count, dedupe_key, created_at
		FROM participations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := make([]*domain.Participation, 0)
	for rows.Next() {
		p := &domain.Participation{}
		var nameNull, catNull, dedupeNull sql.NullString
		var breakdown []byte
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &nameNull, &catNull, &p.ParticipantCount,
			&breakdown, &p.TotalCount, &dedupeNull, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.ParticipantName = nameNull.String
		p.ParticipantCategory = catNull.String
		p.DedupeKey = dedupeNull.String
		if len(breakdown) > 0 {
			if err := json.Unmarshal(breakdown, &p.Breakdown); err != nil {
				return nil, fmt.Errorf("decode category counts of participation %s: %w", p.ID, err)
			}
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *participationRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	query := `DELETE FROM participations WHERE event_id = $1`
	result, err := r.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		return 0, err
	}
	n, _ := result.RowsAffected()
	return n, nil
}
