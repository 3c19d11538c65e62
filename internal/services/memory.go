package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"memoir/internal/domain"
)

type memoryService struct {
	memoryRepo     domain.MemoryRepository
	eventRepo      domain.EventRepository
	objectStore    domain.ObjectStore
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewMemoryService returns the MemoryService that accepts guest submissions
// and maintains the event's denormalized memory counter.
func NewMemoryService(memoryRepo domain.MemoryRepository,
	eventRepo domain.EventRepository,
	objectStore domain.ObjectStore,
	logger *slog.Logger,
	timeout time.Duration,
) domain.MemoryService {
	return &memoryService{
		memoryRepo:     memoryRepo,
		eventRepo:      eventRepo,
		objectStore:    objectStore,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Submit accepts one guest submission for the event with the given slug.
//
// The event is re-read from the store on every call so the admission check
// reflects the latest lock and existence state, never a cached copy. Checks
// run in a fixed order: existence, then lock, then message content. A locked
// event must report locked, not missing. There is no isolation against a
// concurrent lock or delete landing between the check and the insert; that
// race is accepted.
func (s *memoryService) Submit(ctx context.Context, eventSlug, senderName, message string, media *domain.MediaUpload) (*domain.Memory, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Locked {
		return nil, domain.ErrEventLocked
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	senderName = strings.TrimSpace(senderName)
	if senderName == "" {
		senderName = domain.DefaultSenderName
	}

	now := time.Now()

	var mediaURL *string
	mediaType := domain.MediaNone
	if media != nil {
		mediaType = domain.ClassifyMedia(media.ContentType)
		key := domain.ObjectKey(event.ID, now, media.Filename)
		url, err := s.objectStore.Put(ctx, key, media.ContentType, media.Data)
		if err != nil {
			return nil, fmt.Errorf("upload media: %w", err)
		}
		mediaURL = &url
	}

	count, countKnown := s.observedCount(ctx, event.ID)

	memory := domain.NewMemory(event.ID, senderName, message, mediaURL, mediaType, now)
	if err := s.memoryRepo.Create(ctx, memory); err != nil {
		return nil, fmt.Errorf("insert memory: %w", err)
	}

	// Counter is a cache, not a source of truth: if the update fails the
	// insert stands and the counter is allowed to drift.
	if countKnown {
		if err := s.eventRepo.SetMemoryCount(ctx, event.ID, count+1); err != nil {
			s.logger.WarnContext(ctx, "memory counter update failed", "event_id", event.ID, "err", err)
		}
	}

	return memory, nil
}

// observedCount reads the current number of memories for the event. A failed
// read only suppresses the counter update for this call.
func (s *memoryService) observedCount(ctx context.Context, eventID string) (int, bool) {
	count, err := s.memoryRepo.CountByEventID(ctx, eventID)
	if err != nil {
		s.logger.WarnContext(ctx, "memory count read failed", "event_id", eventID, "err", err)
		return 0, false
	}
	return count, true
}

func (s *memoryService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Memory, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	memories, err := s.memoryRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	if memories == nil {
		memories = []*domain.Memory{}
	}
	return memories, nil
}

// Delete removes one memory and decrements the event counter, clamped at
// zero. The counter update is best-effort like on insert.
func (s *memoryService) Delete(ctx context.Context, memoryID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	memory, err := s.memoryRepo.GetByID(ctx, memoryID)
	if err != nil {
		if errors.Is(err, domain.ErrMemoryNotFound) {
			return domain.ErrMemoryNotFound
		}
		return fmt.Errorf("get memory: %w", err)
	}
	if err := s.memoryRepo.Delete(ctx, memoryID); err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, memory.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "memory counter update skipped", "event_id", memory.EventID, "err", err)
		return nil
	}
	next := event.MemoryCount - 1
	if next < 0 {
		next = 0
	}
	if err := s.eventRepo.SetMemoryCount(ctx, event.ID, next); err != nil {
		s.logger.WarnContext(ctx, "memory counter update failed", "event_id", event.ID, "err", err)
	}
	return nil
}
