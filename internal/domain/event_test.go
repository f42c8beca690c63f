package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDetails_Validate(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		details EventDetails
		want    []string
	}{
		{
			name:    "valid",
			details: EventDetails{Title: "Conf", Description: "D", StartDate: start, EndDate: end},
			want:    nil,
		},
		{
			name:    "same start and end is valid",
			details: EventDetails{Title: "Conf", StartDate: start, EndDate: start},
			want:    nil,
		},
		{
			name:    "blank title",
			details: EventDetails{Title: "   ", StartDate: start, EndDate: end},
			want:    []string{"title is required"},
		},
		{
			name:    "missing dates",
			details: EventDetails{Title: "Conf"},
			want:    []string{"startDate is required", "endDate is required"},
		},
		{
			name:    "end before start",
			details: EventDetails{Title: "Conf", StartDate: end, EndDate: start},
			want:    []string{"endDate must not be before startDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.details.Validate())
		})
	}
}

func TestNewEvent(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	loc := time.FixedZone("UTC-3", -3*60*60)
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)
	end := time.Date(2024, 1, 2, 9, 0, 0, 0, loc)

	e := NewEvent(EventDetails{Title: "Conf", Description: "D", StartDate: start, EndDate: end}, now)

	assert.Empty(t, e.ID)
	assert.Equal(t, "Conf", e.Title)
	assert.Equal(t, "D", e.Description)
	assert.True(t, e.StartDate.Equal(start))
	assert.Equal(t, time.UTC, e.StartDate.Location())
	assert.True(t, e.EndDate.Equal(end))
	assert.False(t, e.IsDeleted)
	require.NotNil(t, e.Speakers)
	assert.Empty(t, e.Speakers)
	assert.Equal(t, now, e.CreatedAt)
	assert.Equal(t, now, e.UpdatedAt)
}

func TestEvent_Update(t *testing.T) {
	speaker := &Speaker{ID: "sp-1", Name: "Ana", DevEventID: "ev-1"}
	e := &Event{
		ID:          "ev-1",
		Title:       "Old",
		Description: "Old desc",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		IsDeleted:   true,
		Speakers:    []*Speaker{speaker},
	}
	newStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	newEnd := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	e.Update("New", "New desc", newStart, newEnd)

	assert.Equal(t, "ev-1", e.ID)
	assert.Equal(t, "New", e.Title)
	assert.Equal(t, "New desc", e.Description)
	assert.Equal(t, newStart, e.StartDate)
	assert.Equal(t, newEnd, e.EndDate)
	assert.True(t, e.IsDeleted)
	assert.Equal(t, []*Speaker{speaker}, e.Speakers)
}

func TestEvent_Delete(t *testing.T) {
	speaker := &Speaker{ID: "sp-1", DevEventID: "ev-1"}
	e := &Event{ID: "ev-1", Title: "Conf", Speakers: []*Speaker{speaker}}

	e.Delete()
	require.True(t, e.IsDeleted)

	e.Delete()
	assert.True(t, e.IsDeleted)
	assert.Len(t, e.Speakers, 1)
	assert.Equal(t, "ev-1", speaker.DevEventID)
}

func TestSpeakerDetails_Validate(t *testing.T) {
	tests := []struct {
		name    string
		details SpeakerDetails
		want    []string
	}{
		{"name only", SpeakerDetails{Name: "Ana"}, nil},
		{"with profile", SpeakerDetails{Name: "Ana", LinkedInProfile: "https://www.linkedin.com/in/ana/"}, nil},
		{"missing name", SpeakerDetails{TalkTitle: "T"}, []string{"name is required"}},
		{"relative profile", SpeakerDetails{Name: "Ana", LinkedInProfile: "linkedin.com/in/ana"}, []string{"linkedInProfile must be an absolute http(s) URL"}},
		{"non http profile", SpeakerDetails{Name: "Ana", LinkedInProfile: "ftp://example.com/ana"}, []string{"linkedInProfile must be an absolute http(s) URL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.details.Validate())
		})
	}
}

func TestNewSpeaker(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s := NewSpeaker("ev-1", SpeakerDetails{Name: "Ana", TalkTitle: "T", TalkDescription: "TD", LinkedInProfile: "https://linkedin.com/in/ana"}, now)

	assert.Empty(t, s.ID)
	assert.Equal(t, "ev-1", s.DevEventID)
	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, "T", s.TalkTitle)
	assert.Equal(t, "TD", s.TalkDescription)
	assert.Equal(t, "https://linkedin.com/in/ana", s.LinkedInProfile)
	assert.Equal(t, now, s.CreatedAt)
}
