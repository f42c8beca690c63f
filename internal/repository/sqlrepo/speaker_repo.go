package sqlrepo

import (
	"context"
	"database/sql"

	"devevents/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

// NewSpeakerRepository returns a domain.SpeakerRepository backed by database/sql.
func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

// Create inserts the speaker. A missing owning event is reported as domain.ErrNotFound.
func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO dev_event_speakers (id, dev_event_id, name, talk_title, talk_description, linked_in_profile, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.DevEventID, s.Name, s.TalkTitle, s.TalkDescription, s.LinkedInProfile, s.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *speakerRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, dev_event_id, name, talk_title, talk_description, linked_in_profile, created_at
		FROM dev_event_speakers
		WHERE dev_event_id = $1
		ORDER BY created_at, id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s := &domain.Speaker{}
		if err := rows.Scan(&s.ID, &s.DevEventID, &s.Name, &s.TalkTitle, &s.TalkDescription, &s.LinkedInProfile, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.CreatedAt = s.CreatedAt.UTC()
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}
