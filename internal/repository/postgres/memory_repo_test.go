package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"memoir/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var memoryColumns = []string{"id", "event_id", "sender_name", "message", "media_url", "media_type", "created_at"}

func TestMemoryRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		memory  *domain.Memory
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "with media",
			memory: func() *domain.Memory {
				url := "https://media.example.com/ev-1/photo.jpg"
				return &domain.Memory{
					EventID:    "ev-1",
					SenderName: "Mia",
					Message:    "Congratulations!",
					MediaURL:   &url,
					MediaType:  domain.MediaImage,
					CreatedAt:  createdAt,
				}
			}(),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO memories \(event_id, sender_name, message, media_url, media_type, created_at\)`).
					WithArgs("ev-1", "Mia", "Congratulations!", "https://media.example.com/ev-1/photo.jpg", "image", createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("mem-uuid-1"))
			},
			wantID:  "mem-uuid-1",
			wantErr: false,
		},
		{
			name: "text only",
			memory: &domain.Memory{
				EventID:    "ev-1",
				SenderName: "Guest",
				Message:    "hello",
				MediaType:  domain.MediaNone,
				CreatedAt:  createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO memories`).
					WithArgs("ev-1", "Guest", "hello", nil, "none", createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("mem-uuid-2"))
			},
			wantID:  "mem-uuid-2",
			wantErr: false,
		},
		{
			name: "db error",
			memory: &domain.Memory{
				EventID:   "ev-1",
				Message:   "hello",
				MediaType: domain.MediaNone,
				CreatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO memories`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewMemoryRepository(db)
			err = repo.Create(ctx, tt.memory)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.memory.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMemoryRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, sender_name, message, media_url, media_type, created_at`).
			WithArgs("mem-1").
			WillReturnRows(sqlmock.NewRows(memoryColumns).
				AddRow("mem-1", "ev-1", "Mia", "hi", "https://x/p.jpg", "image", createdAt))

		repo := NewMemoryRepository(db)
		memory, err := repo.GetByID(ctx, "mem-1")
		require.NoError(t, err)
		require.Equal(t, "ev-1", memory.EventID)
		require.NotNil(t, memory.MediaURL)
		require.Equal(t, "https://x/p.jpg", *memory.MediaURL)
		require.Equal(t, domain.MediaImage, memory.MediaType)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id`).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		repo := NewMemoryRepository(db)
		_, err = repo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, domain.ErrMemoryNotFound)
	})
}

func TestMemoryRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, sender_name, message, media_url, media_type, created_at`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(memoryColumns).
			AddRow("mem-2", "ev-1", "Tom", "later", nil, "none", createdAt.Add(time.Minute)).
			AddRow("mem-1", "ev-1", "Mia", "first", "https://x/p.jpg", "image", createdAt))

	repo := NewMemoryRepository(db)
	memories, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, memories, 2)
	require.Equal(t, "mem-2", memories[0].ID)
	require.Nil(t, memories[0].MediaURL)
	require.Equal(t, domain.MediaNone, memories[0].MediaType)
	require.NotNil(t, memories[1].MediaURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository_CountByEventID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM memories`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewMemoryRepository(db)
	count, err := repo.CountByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestMemoryRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM memories`).
			WithArgs("mem-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewMemoryRepository(db)
		require.NoError(t, repo.Delete(ctx, "mem-1"))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM memories`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewMemoryRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrMemoryNotFound)
	})
}
