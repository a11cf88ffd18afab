package api_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mwislek/termino/internal/storage"
)

// memStore is an in-memory storage.Store for handler tests.
type memStore struct {
	mu      sync.Mutex
	events  map[string]*storage.Event
	users   map[string][]*storage.EventUser             // event id -> roster
	months  map[string]*storage.EventMonth              // month id -> month
	choices map[string]map[string][]storage.ChoiceEntry // month id -> user id -> entries
	rules   map[string][]*storage.AvailabilityRule      // event id -> rules
}

func newMemStore() *memStore {
	return &memStore{
		events:  map[string]*storage.Event{},
		users:   map[string][]*storage.EventUser{},
		months:  map[string]*storage.EventMonth{},
		choices: map[string]map[string][]storage.ChoiceEntry{},
		rules:   map[string][]*storage.AvailabilityRule{},
	}
}

func (s *memStore) Close() {}

func (s *memStore) CreateEvent(_ context.Context, name string) (*storage.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := &storage.Event{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	s.events[ev.ID] = ev
	return ev, nil
}

func (s *memStore) GetEvent(_ context.Context, id string) (*storage.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return ev, nil
}

func (s *memStore) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.events, id)
	delete(s.users, id)
	delete(s.rules, id)
	return nil
}

func (s *memStore) AddUser(_ context.Context, eventID, username string) (*storage.EventUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &storage.EventUser{ID: uuid.New().String(), EventID: eventID, Username: username}
	s.users[eventID] = append(s.users[eventID], u)
	return u, nil
}

func (s *memStore) GetUserByName(_ context.Context, eventID, username string) (*storage.EventUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users[eventID] {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) ListUsers(_ context.Context, eventID string) ([]*storage.EventUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*storage.EventUser(nil), s.users[eventID]...), nil
}

func (s *memStore) EnsureMonth(_ context.Context, eventID string, month, year int) (*storage.EventMonth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.months {
		if m.EventID == eventID && m.Month == month && m.Year == year {
			return m, nil
		}
	}
	m := &storage.EventMonth{ID: uuid.New().String(), EventID: eventID, Month: month, Year: year}
	s.months[m.ID] = m
	return m, nil
}

func (s *memStore) ListMonthChoices(_ context.Context, eventID string, month, year int) ([]*storage.DayChoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*storage.DayChoice
	for monthID, m := range s.months {
		if m.EventID != eventID || m.Month != month || m.Year != year {
			continue
		}
		for userID, entries := range s.choices[monthID] {
			username, err := s.usernameByIDLocked(eventID, userID)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				out = append(out, &storage.DayChoice{Day: e.Day, Choice: e.Choice, Username: username})
			}
		}
	}
	return out, nil
}

func (s *memStore) usernameByIDLocked(eventID, userID string) (string, error) {
	for _, u := range s.users[eventID] {
		if u.ID == userID {
			return u.Username, nil
		}
	}
	return "", fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
}

func (s *memStore) ReplaceChoices(_ context.Context, monthID, userID string, entries []storage.ChoiceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.choices[monthID] == nil {
		s.choices[monthID] = map[string][]storage.ChoiceEntry{}
	}
	s.choices[monthID][userID] = append([]storage.ChoiceEntry(nil), entries...)
	return nil
}

func (s *memStore) CreateRule(ctx context.Context, r *storage.AvailabilityRule) (*storage.AvailabilityRule, error) {
	if _, err := s.GetUserByName(ctx, r.EventID, r.Username); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *r
	created.ID = uuid.New().String()
	created.CreatedAt = time.Now().UTC()
	s.rules[r.EventID] = append(s.rules[r.EventID], &created)
	return &created, nil
}

func (s *memStore) ListRules(_ context.Context, eventID string) ([]*storage.AvailabilityRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*storage.AvailabilityRule(nil), s.rules[eventID]...), nil
}
