package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mwislek/termino/internal/storage"
)

func (s *Store) CreateEvent(ctx context.Context, name string) (*storage.Event, error) {
	ev := &storage.Event{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO events (id, name, created_at)
        VALUES (?, ?, ?)
    `, ev.ID, ev.Name, ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*storage.Event, error) {
	var ev storage.Event
	err := s.db.QueryRowContext(ctx, `
        SELECT id, name, created_at FROM events WHERE id = ?
    `, id).Scan(&ev.ID, &ev.Name, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
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
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO events_users (id, event_id, username)
        VALUES (?, ?, ?)
    `, u.ID, u.EventID, u.Username)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) GetUserByName(ctx context.Context, eventID, username string) (*storage.EventUser, error) {
	var u storage.EventUser
	err := s.db.QueryRowContext(ctx, `
        SELECT id, event_id, username
        FROM events_users
        WHERE event_id = ? AND username = ?
    `, eventID, username).Scan(&u.ID, &u.EventID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, eventID string) ([]*storage.EventUser, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, event_id, username
        FROM events_users
        WHERE event_id = ?
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
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO events_months (id, event_id, month, year)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (event_id, month, year)
        DO UPDATE SET month = excluded.month
        RETURNING id
    `, uuid.New().String(), eventID, month, year).Scan(&m.ID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) ListMonthChoices(ctx context.Context, eventID string, month, year int) ([]*storage.DayChoice, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT c.day, c.choice, u.username
        FROM events_months AS m
        JOIN availability_choices AS c ON c.event_month_id = m.id
        JOIN events_users AS u ON u.id = c.user_id
        WHERE m.event_id = ? AND m.month = ? AND m.year = ?
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
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        DELETE FROM availability_choices
        WHERE event_month_id = ? AND user_id = ?
    `, monthID, userID)
	if err != nil {
		return err
	}

	for _, e := range entries {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO availability_choices (id, event_month_id, user_id, day, choice)
            VALUES (?, ?, ?, ?, ?)
        `, uuid.New().String(), monthID, userID, e.Day, e.Choice)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) CreateRule(ctx context.Context, r *storage.AvailabilityRule) (*storage.AvailabilityRule, error) {
	user, err := s.GetUserByName(ctx, r.EventID, r.Username)
	if err != nil {
		return nil, err
	}

	created := *r
	created.ID = uuid.New().String()
	created.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO availability_rules (id, event_id, user_id, choice, rule, start_date, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, created.ID, created.EventID, user.ID, created.Choice, created.Rule, created.StartDate, created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) ListRules(ctx context.Context, eventID string) ([]*storage.AvailabilityRule, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.id, r.event_id, u.username, r.choice, r.rule, r.start_date, r.created_at
        FROM availability_rules AS r
        JOIN events_users AS u ON u.id = r.user_id
        WHERE r.event_id = ?
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
