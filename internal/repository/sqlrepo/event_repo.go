package sqlrepo

import (
	"context"
	"database/sql"
	"errors"

	"devevents/internal/domain"
)

const eventColumns = `e.id, e.title, e.description, e.start_date, e.end_date, e.is_deleted, e.created_at, e.updated_at`

const eventWithSpeakersQuery = `
	SELECT ` + eventColumns + `,
		s.id, s.name, s.talk_title, s.talk_description, s.linked_in_profile, s.created_at
	FROM dev_events e
	LEFT JOIN dev_event_speakers s ON s.dev_event_id = e.id
`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository backed by database/sql.
// The queries run unchanged on Postgres and SQLite.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	query := eventWithSpeakersQuery + `
		WHERE e.is_deleted = $1
		ORDER BY e.created_at, e.id, s.created_at, s.id
	`
	rows, err := r.DB.QueryContext(ctx, query, false)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEventsWithSpeakers(rows)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := eventWithSpeakersQuery + `
		WHERE e.id = $1
		ORDER BY s.created_at, s.id
	`
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events, err := scanEventsWithSpeakers(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}
	return events[0], nil
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM dev_events e WHERE e.id = $1`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	normalizeEventTimes(e)
	return e, nil
}

func (r *eventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM dev_events WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO dev_events (id, title, description, start_date, end_date, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query, e.ID, e.Title, e.Description, e.StartDate, e.EndDate, e.IsDeleted, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE dev_events
		SET title = $1, description = $2, start_date = $3, end_date = $4, is_deleted = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.DB.ExecContext(ctx, query, e.Title, e.Description, e.StartDate, e.EndDate, e.IsDeleted, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanEventsWithSpeakers folds the event/speaker join into events, keeping row order.
func scanEventsWithSpeakers(rows *sql.Rows) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)
	byID := make(map[string]*domain.Event)
	for rows.Next() {
		e := &domain.Event{}
		var sID, sName, sTalkTitle, sTalkDesc, sLinkedIn sql.NullString
		var sCreatedAt sql.NullTime
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt,
			&sID, &sName, &sTalkTitle, &sTalkDesc, &sLinkedIn, &sCreatedAt,
		); err != nil {
			return nil, err
		}
		cur, ok := byID[e.ID]
		if !ok {
			normalizeEventTimes(e)
			e.Speakers = []*domain.Speaker{}
			byID[e.ID] = e
			events = append(events, e)
			cur = e
		}
		if sID.Valid {
			cur.Speakers = append(cur.Speakers, &domain.Speaker{
				ID:              sID.String,
				Name:            sName.String,
				TalkTitle:       sTalkTitle.String,
				TalkDescription: sTalkDesc.String,
				LinkedInProfile: sLinkedIn.String,
				DevEventID:      cur.ID,
				CreatedAt:       sCreatedAt.Time.UTC(),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func normalizeEventTimes(e *domain.Event) {
	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
}
