package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"memoir/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService returns the EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from an event display name: lowercase,
// non-word characters stripped, whitespace collapsed to single hyphens,
// hyphen runs collapsed, no leading or trailing hyphens. Uniqueness is
// enforced by the store, not here.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID, name, category string, date *time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if organizerID == "" {
		return nil, fmt.Errorf("event organizer is required")
	}

	event := domain.NewEvent(name, Slugify(name), category, organizerID, date, time.Now())
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// LockEvent closes the event to new submissions. Locking an already-locked
// event is a no-op.
func (s *eventService) LockEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.setLocked(ctx, id, true)
}

// UnlockEvent reopens the event to submissions. Unlocking an already-open
// event is a no-op.
func (s *eventService) UnlockEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.setLocked(ctx, id, false)
}

func (s *eventService) setLocked(ctx context.Context, id string, locked bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Locked == locked {
		return event, nil
	}
	if err := s.eventRepo.SetLocked(ctx, id, locked); err != nil {
		return nil, fmt.Errorf("set lock: %w", err)
	}
	event.Locked = locked
	return event, nil
}

// DeleteEvent removes the event. The store cascades removal of its memories;
// media objects left behind in the object store are not reconciled.
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
