package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory backing store shared by fakeEventRepo and fakeSpeakerRepo.
// It keeps copies so that mutations only become visible through Update.
type fakeStore struct {
	events   map[string]*domain.Event
	order    []string
	speakers []*domain.Speaker

	listErr          error
	getErr           error
	existsErr        error
	createErr        error
	updateErr        error
	createSpeakerErr error

	getByIDCalls  int
	findByIDCalls int
	existsCalls   int
	updateCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: make(map[string]*domain.Event)}
}

func (f *fakeStore) put(e *domain.Event) {
	if _, ok := f.events[e.ID]; !ok {
		f.order = append(f.order, e.ID)
	}
	cp := *e
	cp.Speakers = nil
	f.events[e.ID] = &cp
}

func (f *fakeStore) withSpeakers(e *domain.Event) *domain.Event {
	cp := *e
	cp.Speakers = []*domain.Speaker{}
	for _, s := range f.speakers {
		if s.DevEventID == e.ID {
			sc := *s
			cp.Speakers = append(cp.Speakers, &sc)
		}
	}
	return &cp
}

type fakeEventRepo struct{ *fakeStore }

func (f fakeEventRepo) ListActive(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, id := range f.order {
		if e := f.events[id]; !e.IsDeleted {
			out = append(out, f.withSpeakers(e))
		}
	}
	return out, nil
}

func (f fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.getByIDCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f.withSpeakers(e), nil
}

func (f fakeEventRepo) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	f.findByIDCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f fakeEventRepo) Exists(ctx context.Context, id string) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.events[id]
	return ok, nil
}

func (f fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.put(e)
	return nil
}

func (f fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.put(e)
	return nil
}

type fakeSpeakerRepo struct{ *fakeStore }

func (f fakeSpeakerRepo) Create(ctx context.Context, s *domain.Speaker) error {
	if f.createSpeakerErr != nil {
		return f.createSpeakerErr
	}
	if _, ok := f.events[s.DevEventID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	f.speakers = append(f.speakers, &cp)
	return nil
}

func (f fakeSpeakerRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	var out []*domain.Speaker
	for _, s := range f.speakers {
		if s.DevEventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

const (
	knownID   = "6f1c2a7e-8d0b-4c1e-9a4f-2b7d5e3c1a90"
	unknownID = "0a9b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
)

var (
	jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
)

func newTestService(store *fakeStore) *devEventService {
	svc := NewDevEventService(fakeEventRepo{store}, fakeSpeakerRepo{store}, 5*time.Second).(*devEventService)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func seedEvent(store *fakeStore) *domain.Event {
	e := &domain.Event{ID: knownID, Title: "Conf", Description: "D", StartDate: jan1, EndDate: jan2}
	store.put(e)
	return e
}

func TestDevEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		details domain.EventDetails
		setup   func(store *fakeStore)
		wantErr error
		check   func(t *testing.T, store *fakeStore, event *domain.Event)
	}{
		{
			name:    "success assigns uuid and persists",
			details: domain.EventDetails{Title: "Conf", Description: "D", StartDate: jan1, EndDate: jan2},
			check: func(t *testing.T, store *fakeStore, event *domain.Event) {
				assert.True(t, isValidID(event.ID))
				assert.Equal(t, "Conf", event.Title)
				assert.False(t, event.IsDeleted)
				assert.NotNil(t, event.Speakers)
				assert.Empty(t, event.Speakers)
				assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), event.CreatedAt)
				_, ok := store.events[event.ID]
				assert.True(t, ok)
			},
		},
		{
			name:    "missing title",
			details: domain.EventDetails{StartDate: jan1, EndDate: jan2},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "end before start",
			details: domain.EventDetails{Title: "Conf", StartDate: jan2, EndDate: jan1},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "repo error",
			details: domain.EventDetails{Title: "Conf", StartDate: jan1, EndDate: jan2},
			setup:   func(store *fakeStore) { store.createErr = errors.New("db error") },
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.setup != nil {
				tt.setup(store)
			}
			svc := newTestService(store)
			event, err := svc.CreateEvent(ctx, tt.details)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrInvalidInput) {
					require.ErrorIs(t, err, domain.ErrInvalidInput)
				}
				assert.Empty(t, store.events)
				return
			}
			require.NoError(t, err)
			tt.check(t, store, event)
		})
	}
}

func TestDevEventService_GetEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns event with speakers", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		store.speakers = append(store.speakers, &domain.Speaker{ID: "sp-1", Name: "Ana", DevEventID: knownID})
		svc := newTestService(store)

		got, err := svc.GetEvent(ctx, knownID)
		require.NoError(t, err)
		assert.Equal(t, "Conf", got.Title)
		require.Len(t, got.Speakers, 1)
		assert.Equal(t, knownID, got.Speakers[0].DevEventID)
		assert.Equal(t, 1, store.getByIDCalls)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := newTestService(newFakeStore())
		_, err := svc.GetEvent(ctx, unknownID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed id is not found without touching the store", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)
		_, err := svc.GetEvent(ctx, "not-a-uuid")
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, 0, store.getByIDCalls)
	})

	t.Run("repo error is wrapped", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = errors.New("db down")
		svc := newTestService(store)
		_, err := svc.GetEvent(ctx, knownID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "get event: db down")
	})
}

func TestDevEventService_ListEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("excludes deleted events", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		store.put(&domain.Event{ID: unknownID, Title: "Gone", StartDate: jan1, EndDate: jan2, IsDeleted: true})
		svc := newTestService(store)

		got, err := svc.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, knownID, got[0].ID)
		for _, e := range got {
			assert.False(t, e.IsDeleted)
		}
	})

	t.Run("empty store gives empty slice", func(t *testing.T) {
		svc := newTestService(newFakeStore())
		got, err := svc.ListEvents(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("repo error", func(t *testing.T) {
		store := newFakeStore()
		store.listErr = errors.New("db down")
		svc := newTestService(store)
		_, err := svc.ListEvents(ctx)
		require.Error(t, err)
	})
}

func TestDevEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	newStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	newEnd := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	details := domain.EventDetails{Title: "New", Description: "ND", StartDate: newStart, EndDate: newEnd}

	t.Run("replaces only mutable fields", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		store.events[knownID].IsDeleted = true
		store.speakers = append(store.speakers, &domain.Speaker{ID: "sp-1", DevEventID: knownID})
		svc := newTestService(store)

		require.NoError(t, svc.UpdateEvent(ctx, knownID, details))

		got := store.events[knownID]
		assert.Equal(t, knownID, got.ID)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "ND", got.Description)
		assert.Equal(t, newStart, got.StartDate)
		assert.Equal(t, newEnd, got.EndDate)
		assert.True(t, got.IsDeleted)
		assert.Len(t, store.speakers, 1)
		assert.Equal(t, 1, store.findByIDCalls)
		assert.Equal(t, 0, store.getByIDCalls, "update must not load speakers")
	})

	t.Run("unknown id", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)
		require.ErrorIs(t, svc.UpdateEvent(ctx, unknownID, details), domain.ErrNotFound)
		assert.Equal(t, 0, store.updateCalls)
	})

	t.Run("invalid input is rejected before lookup", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		svc := newTestService(store)
		err := svc.UpdateEvent(ctx, knownID, domain.EventDetails{Title: "", StartDate: newStart, EndDate: newEnd})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 0, store.findByIDCalls)
		assert.Equal(t, "Conf", store.events[knownID].Title)
	})

	t.Run("update error", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		store.updateErr = errors.New("db down")
		svc := newTestService(store)
		err := svc.UpdateEvent(ctx, knownID, details)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "update event")
	})
}

func TestDevEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("soft deletes and is repeatable", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		store.speakers = append(store.speakers, &domain.Speaker{ID: "sp-1", DevEventID: knownID})
		svc := newTestService(store)

		require.NoError(t, svc.DeleteEvent(ctx, knownID))
		assert.True(t, store.events[knownID].IsDeleted)

		require.NoError(t, svc.DeleteEvent(ctx, knownID))
		assert.True(t, store.events[knownID].IsDeleted)
		assert.Len(t, store.events, 1, "events are never physically removed")
		assert.Len(t, store.speakers, 1, "delete does not cascade")
		assert.Equal(t, 0, store.getByIDCalls)
	})

	t.Run("unknown id leaves store unchanged", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		svc := newTestService(store)

		require.ErrorIs(t, svc.DeleteEvent(ctx, unknownID), domain.ErrNotFound)
		assert.False(t, store.events[knownID].IsDeleted)
		assert.Equal(t, 0, store.updateCalls)
	})

	t.Run("lookup error", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = errors.New("db down")
		svc := newTestService(store)
		err := svc.DeleteEvent(ctx, knownID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDevEventService_AddSpeaker(t *testing.T) {
	ctx := context.Background()
	details := domain.SpeakerDetails{Name: "Ana", TalkTitle: "T"}

	t.Run("owning event comes from the path", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		svc := newTestService(store)

		sp, err := svc.AddSpeaker(ctx, knownID, details)
		require.NoError(t, err)
		assert.True(t, isValidID(sp.ID))
		assert.Equal(t, knownID, sp.DevEventID)
		require.Len(t, store.speakers, 1)
		assert.Equal(t, knownID, store.speakers[0].DevEventID)
		assert.Equal(t, 1, store.existsCalls)
		assert.Equal(t, 0, store.getByIDCalls)
		assert.Equal(t, 0, store.findByIDCalls)
	})

	t.Run("unknown event persists nothing", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)

		_, err := svc.AddSpeaker(ctx, unknownID, details)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, store.speakers)
	})

	t.Run("missing name", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		svc := newTestService(store)

		_, err := svc.AddSpeaker(ctx, knownID, domain.SpeakerDetails{TalkTitle: "T"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, store.speakers)
	})

	t.Run("event vanished before insert", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		store.createSpeakerErr = domain.ErrNotFound
		svc := newTestService(store)

		_, err := svc.AddSpeaker(ctx, knownID, details)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("exists error", func(t *testing.T) {
		store := newFakeStore()
		store.existsErr = errors.New("db down")
		svc := newTestService(store)

		_, err := svc.AddSpeaker(ctx, knownID, details)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "check event")
	})
}

func TestDevEventService_ListSpeakers(t *testing.T) {
	ctx := context.Background()

	t.Run("lists speakers of the event", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		store.speakers = append(store.speakers,
			&domain.Speaker{ID: "sp-1", Name: "Ana", DevEventID: knownID},
			&domain.Speaker{ID: "sp-2", Name: "Other", DevEventID: unknownID},
		)
		svc := newTestService(store)

		got, err := svc.ListSpeakers(ctx, knownID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Ana", got[0].Name)
	})

	t.Run("no speakers gives empty slice", func(t *testing.T) {
		store := newFakeStore()
		seedEvent(store)
		svc := newTestService(store)

		got, err := svc.ListSpeakers(ctx, knownID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := newTestService(newFakeStore())
		_, err := svc.ListSpeakers(ctx, unknownID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDevEventService_Scenario(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.CreateEvent(ctx, domain.EventDetails{Title: "Conf", Description: "D", StartDate: jan1, EndDate: jan2})
	require.NoError(t, err)

	got, err := svc.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Conf", got.Title)
	assert.Equal(t, "D", got.Description)
	assert.Equal(t, jan1, got.StartDate)
	assert.Equal(t, jan2, got.EndDate)
	assert.Empty(t, got.Speakers)

	_, err = svc.AddSpeaker(ctx, created.ID, domain.SpeakerDetails{Name: "Ana", TalkTitle: "T"})
	require.NoError(t, err)

	got, err = svc.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Speakers, 1)
	assert.Equal(t, created.ID, got.Speakers[0].DevEventID)

	require.NoError(t, svc.DeleteEvent(ctx, created.ID))

	list, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	for _, e := range list {
		assert.NotEqual(t, created.ID, e.ID)
	}
}
