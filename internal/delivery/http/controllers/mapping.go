package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"devevents/internal/domain"
)

// dateLayouts are the accepted input formats for event dates, tried in order.
// Inputs without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date is a JSON date that accepts RFC 3339, a zone-less date-time, or a plain date.
// null and "" decode to the zero time.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: use RFC 3339, 2006-01-02T15:04:05 or 2006-01-02", s)
}

// EventInput is the request body for POST and PUT /api/dev-events.
type EventInput struct {
	Title       string `json:"title" example:"GopherCon"`
	Description string `json:"description" example:"Annual Go conference"`
	StartDate   Date   `json:"startDate" swaggertype:"string" format:"date-time" example:"2026-07-07T09:00:00Z"`
	EndDate     Date   `json:"endDate" swaggertype:"string" format:"date-time" example:"2026-07-10T18:00:00Z"`
}

// Details converts the input into domain event details.
func (in EventInput) Details() domain.EventDetails {
	return domain.EventDetails{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate.Time,
		EndDate:     in.EndDate.Time,
	}
}

// Validate implements helpers.Validator.
func (in EventInput) Validate() []string {
	return in.Details().Validate()
}

// SpeakerInput is the request body for POST /api/dev-events/{id}/speakers.
// A devEventId in the body is accepted for compatibility and ignored; the path id wins.
type SpeakerInput struct {
	Name            string `json:"name" example:"Rob Pike"`
	TalkTitle       string `json:"talkTitle" example:"Concurrency is not parallelism"`
	TalkDescription string `json:"talkDescription"`
	LinkedInProfile string `json:"linkedInProfile" example:"https://www.linkedin.com/in/example"`
	DevEventID      string `json:"devEventId,omitempty" swaggerignore:"true"`
}

// Details converts the input into domain speaker details.
func (in SpeakerInput) Details() domain.SpeakerDetails {
	return domain.SpeakerDetails{
		Name:            in.Name,
		TalkTitle:       in.TalkTitle,
		TalkDescription: in.TalkDescription,
		LinkedInProfile: in.LinkedInProfile,
	}
}

// Validate implements helpers.Validator.
func (in SpeakerInput) Validate() []string {
	return in.Details().Validate()
}

// EventView is the JSON representation of an event.
type EventView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Speakers    []SpeakerView `json:"speakers"`
	IsDeleted   bool          `json:"isDeleted"`
}

// SpeakerView is the JSON representation of a speaker.
type SpeakerView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TalkTitle       string `json:"talkTitle"`
	TalkDescription string `json:"talkDescription"`
	LinkedInProfile string `json:"linkedInProfile"`
	DevEventID      string `json:"devEventId"`
}

// ToEventView maps an event and its speakers to the view. Speakers is never nil.
func ToEventView(e *domain.Event) EventView {
	return EventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate.UTC(),
		EndDate:     e.EndDate.UTC(),
		Speakers:    ToSpeakerViews(e.Speakers),
		IsDeleted:   e.IsDeleted,
	}
}

// ToEventViews maps a list of events. The result is never nil.
func ToEventViews(events []*domain.Event) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, ToEventView(e))
	}
	return views
}

func ToSpeakerView(s *domain.Speaker) SpeakerView {
	return SpeakerView{
		ID:              s.ID,
		Name:            s.Name,
		TalkTitle:       s.TalkTitle,
		TalkDescription: s.TalkDescription,
		LinkedInProfile: s.LinkedInProfile,
		DevEventID:      s.DevEventID,
	}
}

func ToSpeakerViews(speakers []*domain.Speaker) []SpeakerView {
	views := make([]SpeakerView, 0, len(speakers))
	for _, s := range speakers {
		views = append(views, ToSpeakerView(s))
	}
	return views
}
