package domain

import (
	"context"
	"errors"
	"io"
	"time"
)

// Sentinel errors for memory submission.
var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrMemoryNotFound = errors.New("memory not found")
)

// DefaultSenderName is shown when a guest submits without a name.
const DefaultSenderName = "Guest"

// MediaType classifies a memory's attached media.
type MediaType string

// Media type constants. A memory without media is MediaNone.
const (
	MediaNone  MediaType = "none"
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Memory represents one guest submission belonging to an event.
// Memories are immutable after creation.
// swagger:model Memory
type Memory struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	MediaURL   *string   `json:"media_url,omitempty"`
	MediaType  MediaType `json:"media_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewMemory returns a new Memory. MediaType must be MediaNone exactly when
// mediaURL is nil. ID is typically set by the repository on create.
func NewMemory(eventID, senderName, message string, mediaURL *string, mediaType MediaType, createdAt time.Time) *Memory {
	return &Memory{
		EventID:    eventID,
		SenderName: senderName,
		Message:    message,
		MediaURL:   mediaURL,
		MediaType:  mediaType,
		CreatedAt:  createdAt,
	}
}

// MemoryRepository defines the interface for memory storage.
// ListByEventID returns memories newest first.
type MemoryRepository interface {
	Create(ctx context.Context, memory *Memory) error
	GetByID(ctx context.Context, id string) (*Memory, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Memory, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// MediaUpload is a guest-submitted file, described only by what the client
// declared about it.
type MediaUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// MemoryService defines the business logic for guest submissions and
// organizer moderation.
type MemoryService interface {
	Submit(ctx context.Context, eventSlug, senderName, message string, media *MediaUpload) (*Memory, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Memory, error)
	Delete(ctx context.Context, memoryID string) error
}

// ObjectStore stores uploaded media bytes under a key and returns a public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data io.Reader) (publicURL string, err error)
}
