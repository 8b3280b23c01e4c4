package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kalender/internal/domain"
)

const eventColumns = `id, title, description, date, start_time, end_time, location, category, sub_category, is_admin_only, created_by, notified, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, subNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &descNull, &e.Date, &e.StartTime, &e.EndTime, &e.Location,
		&e.Category, &subNull, &e.IsAdminOnly, &e.CreatedBy, &e.Notified, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Description = descNull.String
	e.SubCategory = subNull.String
	return e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, start_time, end_time, location, category, sub_category, is_admin_only, created_by, notified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, nullString(e.Description), e.Date, e.StartTime, e.EndTime, e.Location,
		e.Category, nullString(e.SubCategory), e.IsAdminOnly, e.CreatedBy, e.Notified, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	var where []string
	var args []any
	n := 1
	if !filter.IncludeAdminOnly {
		where = append(where, "is_admin_only = FALSE")
	}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("date >= $%d", n))
		args = append(args, *filter.From)
		n++
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("date <= $%d", n))
		args = append(args, *filter.To)
		n++
	}
	if filter.Before != nil {
		where = append(where, fmt.Sprintf("date < $%d", n))
		args = append(args, *filter.Before)
		n++
	}
	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET title = $1, description = $2, date = $3, start_time = $4, end_time = $5,
			location = $6, category = $7, sub_category = $8, is_admin_only = $9, created_by = $10, notified = $11
		WHERE id = $12
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, nullString(e.Description), e.Date, e.StartTime, e.EndTime,
		e.Location, e.Category, nullString(e.SubCategory), e.IsAdminOnly, e.CreatedBy, e.Notified,
		e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
