package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"memoir/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, slug, event_type, date, is_locked, memory_count, organizer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Slug, e.Category, e.Date, e.Locked, e.MemoryCount, e.OrganizerID, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, slug, event_type, date, is_locked, memory_count, organizer_id, created_at
		FROM events
		WHERE id = $1
	`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	query := `
		SELECT id, name, slug, event_type, date, is_locked, memory_count, organizer_id, created_at
		FROM events
		WHERE slug = $1
	`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var dateNull sql.NullTime
	err := row.Scan(&e.ID, &e.Name, &e.Slug, &e.Category, &dateNull, &e.Locked, &e.MemoryCount, &e.OrganizerID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	if dateNull.Valid {
		e.Date = &dateNull.Time
	}
	return e, nil
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `
		SELECT id, name, slug, event_type, date, is_locked, memory_count, organizer_id, created_at
		FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var dateNull sql.NullTime
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug, &e.Category, &dateNull, &e.Locked, &e.MemoryCount, &e.OrganizerID, &e.CreatedAt); err != nil {
			return nil, err
		}
		if dateNull.Valid {
			e.Date = &dateNull.Time
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	query := `UPDATE events SET is_locked = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, locked)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) SetMemoryCount(ctx context.Context, id string, count int) error {
	query := `UPDATE events SET memory_count = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, count)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Delete removes the event. Memories go with it through the store's
// ON DELETE CASCADE foreign key; media objects are not reconciled.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
