package domain

import (
	"context"
	"strings"
	"time"
)

// Event represents a developer conference or meetup.
type Event struct {
	ID          string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	IsDeleted   bool
	Speakers    []*Speaker
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventDetails holds the caller-supplied fields of an event, used on create and update.
type EventDetails struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

// Validate returns error messages for required fields and date ordering; empty means valid.
func (d EventDetails) Validate() []string {
	var errs []string
	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, "title is required")
	}
	if d.StartDate.IsZero() {
		errs = append(errs, "startDate is required")
	}
	if d.EndDate.IsZero() {
		errs = append(errs, "endDate is required")
	}
	if !d.StartDate.IsZero() && !d.EndDate.IsZero() && d.EndDate.Before(d.StartDate) {
		errs = append(errs, "endDate must not be before startDate")
	}
	return errs
}

// NewEvent returns a new, not deleted Event with no speakers. ID is set by the service on create.
func NewEvent(details EventDetails, now time.Time) *Event {
	return &Event{
		Title:       details.Title,
		Description: details.Description,
		StartDate:   details.StartDate.UTC(),
		EndDate:     details.EndDate.UTC(),
		Speakers:    []*Speaker{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Update replaces title, description and dates. ID, deletion flag and speakers are left alone.
func (e *Event) Update(title, description string, startDate, endDate time.Time) {
	e.Title = title
	e.Description = description
	e.StartDate = startDate.UTC()
	e.EndDate = endDate.UTC()
}

// Delete marks the event as deleted. Speakers are not touched.
func (e *Event) Delete() {
	e.IsDeleted = true
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// ListActive returns events whose deletion flag is false, speakers included, in creation order.
	ListActive(ctx context.Context) ([]*Event, error)
	// GetByID returns the event with its speakers, deleted or not.
	GetByID(ctx context.Context, id string) (*Event, error)
	// FindByID returns the event without loading speakers.
	FindByID(ctx context.Context, id string) (*Event, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, event *Event) error
	// Update persists title, description, dates and the deletion flag.
	Update(ctx context.Context, event *Event) error
}

// DevEventService defines the operations exposed by the dev-events API.
type DevEventService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, details EventDetails) (*Event, error)
	UpdateEvent(ctx context.Context, id string, details EventDetails) error
	DeleteEvent(ctx context.Context, id string) error
	AddSpeaker(ctx context.Context, eventID string, details SpeakerDetails) (*Speaker, error)
	ListSpeakers(ctx context.Context, eventID string) ([]*Speaker, error)
}
