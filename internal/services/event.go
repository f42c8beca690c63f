package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"devevents/internal/domain"
)

type devEventService struct {
	eventRepo      domain.EventRepository
	speakerRepo    domain.SpeakerRepository
	now            func() time.Time
	contextTimeout time.Duration
}

func NewDevEventService(eventRepo domain.EventRepository, speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.DevEventService {
	return &devEventService{
		eventRepo:      eventRepo,
		speakerRepo:    speakerRepo,
		now:            func() time.Time { return time.Now().UTC() },
		contextTimeout: timeout,
	}
}

func (s *devEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *devEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if !isValidID(id) {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Speakers == nil {
		event.Speakers = []*domain.Speaker{}
	}
	return event, nil
}

func (s *devEventService) CreateEvent(ctx context.Context, details domain.EventDetails) (*domain.Event, error) {
	if err := invalid(details.Validate()); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event := domain.NewEvent(details, s.now())
	event.ID = uuid.NewString()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *devEventService) UpdateEvent(ctx context.Context, id string, details domain.EventDetails) error {
	if !isValidID(id) {
		return domain.ErrNotFound
	}
	if err := invalid(details.Validate()); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	event.Update(details.Title, details.Description, details.StartDate, details.EndDate)
	event.UpdatedAt = s.now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// DeleteEvent soft-deletes the event. Deleting an already deleted event succeeds again.
func (s *devEventService) DeleteEvent(ctx context.Context, id string) error {
	if !isValidID(id) {
		return domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	event.Delete()
	event.UpdatedAt = s.now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// AddSpeaker attaches a new speaker to eventID. Only the event's existence is checked.
func (s *devEventService) AddSpeaker(ctx context.Context, eventID string, details domain.SpeakerDetails) (*domain.Speaker, error) {
	if !isValidID(eventID) {
		return nil, domain.ErrNotFound
	}
	if err := invalid(details.Validate()); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.eventRepo.Exists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	speaker := domain.NewSpeaker(eventID, details, s.now())
	speaker.ID = uuid.NewString()
	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("create speaker: %w", err)
	}
	return speaker, nil
}

func (s *devEventService) ListSpeakers(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	if !isValidID(eventID) {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.eventRepo.Exists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	speakers, err := s.speakerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

// isValidID reports whether id can name a stored entity: only canonical UUID strings can.
func isValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func invalid(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}
