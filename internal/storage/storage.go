package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced event, user or month row does
// not exist.
var ErrNotFound = errors.New("not found")

type Event struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type EventUser struct {
	ID       string
	EventID  string
	Username string
}

type EventMonth struct {
	ID      string
	EventID string
	Month   int // 0-based
	Year    int
}

// DayChoice is one manually picked day, joined with its owner's username.
type DayChoice struct {
	Day      int
	Choice   string
	Username string
}

// ChoiceEntry is a single day selection as submitted by a client.
type ChoiceEntry struct {
	Day    int
	Choice string
}

type AvailabilityRule struct {
	ID        string
	EventID   string
	Username  string
	Choice    string
	Rule      string
	StartDate time.Time
	CreatedAt time.Time
}

type Store interface {
	Close()

	// Events
	CreateEvent(ctx context.Context, name string) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error

	// Roster
	AddUser(ctx context.Context, eventID, username string) (*EventUser, error)
	GetUserByName(ctx context.Context, eventID, username string) (*EventUser, error)
	ListUsers(ctx context.Context, eventID string) ([]*EventUser, error)

	// Months and manual day choices
	EnsureMonth(ctx context.Context, eventID string, month, year int) (*EventMonth, error)
	ListMonthChoices(ctx context.Context, eventID string, month, year int) ([]*DayChoice, error)
	ReplaceChoices(ctx context.Context, monthID, userID string, entries []ChoiceEntry) error

	// Recurrence rules
	CreateRule(ctx context.Context, r *AvailabilityRule) (*AvailabilityRule, error)
	ListRules(ctx context.Context, eventID string) ([]*AvailabilityRule, error)
}
