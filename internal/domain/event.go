package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for event operations.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventLocked   = errors.New("event is locked")
)

// DefaultEventCategory is used when an event is created without a category.
const DefaultEventCategory = "other"

// Event represents a collection point for guest-submitted memories,
// owned by one organizer.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Category    string     `json:"category"`
	Date        *time.Time `json:"date,omitempty"`
	Locked      bool       `json:"is_locked"`
	MemoryCount int        `json:"memory_count"`
	OrganizerID string     `json:"organizer_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewEvent returns a new unlocked Event with a zero memory counter.
// ID is typically set by the repository on create.
func NewEvent(name, slug, category, organizerID string, date *time.Time, createdAt time.Time) *Event {
	if category == "" {
		category = DefaultEventCategory
	}
	return &Event{
		Name:        name,
		Slug:        slug,
		Category:    category,
		Date:        date,
		Locked:      false,
		MemoryCount: 0,
		OrganizerID: organizerID,
		CreatedAt:   createdAt,
	}
}

// EventRepository defines the interface for event storage.
// Delete cascades removal of the event's memories in the store.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	SetLocked(ctx context.Context, id string, locked bool) error
	SetMemoryCount(ctx context.Context, id string, count int) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for organizer-owned events.
type EventService interface {
	CreateEvent(ctx context.Context, organizerID, name, category string, date *time.Time) (*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	LockEvent(ctx context.Context, id string) (*Event, error)
	UnlockEvent(ctx context.Context, id string) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
