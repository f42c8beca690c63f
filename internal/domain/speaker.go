package domain

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Speaker represents a person presenting at an event. Each speaker belongs to exactly one event.
type Speaker struct {
	ID              string
	Name            string
	TalkTitle       string
	TalkDescription string
	LinkedInProfile string
	DevEventID      string
	CreatedAt       time.Time
}

// SpeakerDetails holds the caller-supplied fields of a speaker.
type SpeakerDetails struct {
	Name            string
	TalkTitle       string
	TalkDescription string
	LinkedInProfile string
}

// Validate returns error messages for the speaker fields; empty means valid.
func (d SpeakerDetails) Validate() []string {
	var errs []string
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "name is required")
	}
	if d.LinkedInProfile != "" {
		u, err := url.Parse(d.LinkedInProfile)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, "linkedInProfile must be an absolute http(s) URL")
		}
	}
	return errs
}

// NewSpeaker returns a new Speaker owned by eventID. ID is set by the service.
func NewSpeaker(eventID string, details SpeakerDetails, now time.Time) *Speaker {
	return &Speaker{
		Name:            details.Name,
		TalkTitle:       details.TalkTitle,
		TalkDescription: details.TalkDescription,
		LinkedInProfile: details.LinkedInProfile,
		DevEventID:      eventID,
		CreatedAt:       now,
	}
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	ListByEventID(ctx context.Context, eventID string) ([]*Speaker, error)
}
