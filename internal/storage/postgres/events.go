package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mwislek/termino/internal/storage"
)

func (s *Store) CreateEvent(ctx context.Context, name string) (*storage.Event, error) {
	ev := &storage.Event{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx, `
        INSERT INTO events (id, name, created_at)
        VALUES ($1::uuid, $2, $3)
    `, ev.ID, ev.Name, ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*storage.Event, error) {
	var ev storage.Event
	err := s.pool.QueryRow(ctx, `
        SELECT id::text, name, created_at
        FROM events
        WHERE id::text = $1
    `, id).Scan(&ev.ID, &ev.Name, &ev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	cmdTag, err := s.pool.Exec(ctx, `
        DELETE FROM events WHERE id::text = $1
    `, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AddUser(ctx context.Context, eventID, username string) (*storage.EventUser, error) {
	u := &storage.EventUser{
		ID:       uuid.New().String(),
		EventID:  eventID,
		Username: username,
	}
	_, err := s.pool.Exec(ctx, `
        INSERT INTO events_users (id, event_id, username)
        VALUES ($1::uuid, $2::uuid, $3)
    `, u.ID, u.EventID, u.Username)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) GetUserByName(ctx context.Context, eventID, username string) (*storage.EventUser, error) {
	var u storage.EventUser
	err := s.pool.QueryRow(ctx, `
        SELECT id::text, event_id::text, username
        FROM events_users
        WHERE event_id::text = $1 AND username = $2
    `, eventID, username).Scan(&u.ID, &u.EventID, &u.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, eventID string) ([]*storage.EventUser, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id::text, event_id::text, username
        FROM events_users
        WHERE event_id::text = $1
        ORDER BY username
    `, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*storage.EventUser
	for rows.Next() {
		var u storage.EventUser
		if err := rows.Scan(&u.ID, &u.EventID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (s *Store) EnsureMonth(ctx context.Context, eventID string, month, year int) (*storage.EventMonth, error) {
	m := &storage.EventMonth{
		EventID: eventID,
		Month:   month,
		Year:    year,
	}
	err := s.pool.QueryRow(ctx, `
        INSERT INTO events_months (id, event_id, month, year)
        VALUES ($1::uuid, $2::uuid, $3, $4)
        ON CONFLICT (event_id, month, year)
        DO UPDATE SET month = EXCLUDED.month
        RETURNING id::text
    `, uuid.New().String(), eventID, month, year).Scan(&m.ID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) ListMonthChoices(ctx context.Context, eventID string, month, year int) ([]*storage.DayChoice, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT c.day, c.choice, u.username
        FROM events_months AS m
        JOIN availability_choices AS c ON c.event_month_id = m.id
        JOIN events_users AS u ON u.id = c.user_id
        WHERE m.event_id::text = $1 AND m.month = $2 AND m.year = $3
        ORDER BY u.username, c.day
    `, eventID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []*storage.DayChoice
	for rows.Next() {
		var c storage.DayChoice
		if err := rows.Scan(&c.Day, &c.Choice, &c.Username); err != nil {
			return nil, err
		}
		choices = append(choices, &c)
	}
	return choices, rows.Err()
}

func (s *Store) ReplaceChoices(ctx context.Context, monthID, userID string, entries []storage.ChoiceEntry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        DELETE FROM availability_choices
        WHERE event_month_id::text = $1 AND user_id::text = $2
    `, monthID, userID)
	if err != nil {
		return err
	}

	for _, e := range entries {
		_, err = tx.Exec(ctx, `
            INSERT INTO availability_choices (id, event_month_id, user_id, day, choice)
            VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5)
        `, uuid.New().String(), monthID, userID, e.Day, e.Choice)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) CreateRule(ctx context.Context, r *storage.AvailabilityRule) (*storage.AvailabilityRule, error) {
	user, err := s.GetUserByName(ctx, r.EventID, r.Username)
	if err != nil {
		return nil, err
	}

	created := *r
	created.ID = uuid.New().String()
	created.CreatedAt = time.Now().UTC()

	_, err = s.pool.Exec(ctx, `
        INSERT INTO availability_rules (id, event_id, user_id, choice, rule, start_date, created_at)
        VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7)
    `, created.ID, created.EventID, user.ID, created.Choice, created.Rule, created.StartDate, created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) ListRules(ctx context.Context, eventID string) ([]*storage.AvailabilityRule, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT r.id::text, r.event_id::text, u.username, r.choice, r.rule, r.start_date, r.created_at
        FROM availability_rules AS r
        JOIN events_users AS u ON u.id = r.user_id
        WHERE r.event_id::text = $1
        ORDER BY r.created_at
    `, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*storage.AvailabilityRule
	for rows.Next() {
		var r storage.AvailabilityRule
		if err := rows.Scan(&r.ID, &r.EventID, &r.Username, &r.Choice, &r.Rule, &r.StartDate, &r.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, &r)
	}
	return rules, rows.Err()
}
