package postgres

import (
	"context"
	"database/sql"
	"errors"

	"memoir/internal/domain"
)

type memoryRepository struct {
	DB *sql.DB
}

func NewMemoryRepository(db *sql.DB) domain.MemoryRepository {
	return &memoryRepository{
		DB: db,
	}
}

func (r *memoryRepository) Create(ctx context.Context, m *domain.Memory) error {
	query := `
		INSERT INTO memories (event_id, sender_name, message, media_url, media_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		m.EventID, m.SenderName, m.Message, m.MediaURL, string(m.MediaType), m.CreatedAt,
	).Scan(&m.ID)
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*domain.Memory, error) {
	query := `
		SELECT id, event_id, sender_name, message, media_url, media_type, created_at
		FROM memories
		WHERE id = $1
	`
	m := &domain.Memory{}
	var urlNull sql.NullString
	var mediaType string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.EventID, &m.SenderName, &m.Message, &urlNull, &mediaType, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMemoryNotFound
		}
		return nil, err
	}
	if urlNull.Valid {
		m.MediaURL = &urlNull.String
	}
	m.MediaType = domain.MediaType(mediaType)
	return m, nil
}

func (r *memoryRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Memory, error) {
	query := `
		SELECT id, event_id, sender_name, message, media_url, media_type, created_at
		FROM memories
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	memories := make([]*domain.Memory, 0)
	for rows.Next() {
		m := &domain.Memory{}
		var urlNull sql.NullString
		var mediaType string
		if err := rows.Scan(&m.ID, &m.EventID, &m.SenderName, &m.Message, &urlNull, &mediaType, &m.CreatedAt); err != nil {
			return nil, err
		}
		if urlNull.Valid {
			m.MediaURL = &urlNull.String
		}
		m.MediaType = domain.MediaType(mediaType)
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

func (r *memoryRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM memories WHERE event_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM memories WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMemoryNotFound
	}
	return nil
}
