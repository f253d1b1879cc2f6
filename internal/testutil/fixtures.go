package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/google/uuid"
)

var testStaffCounter atomic.Int64

// Identity options
type IdentityOption func(*domain.UserIdentity)

func WithStaffID(id string) IdentityOption {
	return func(u *domain.UserIdentity) {
		u.StaffID = domain.StaffID(id)
	}
}

func WithEmail(email string) IdentityOption {
	return func(u *domain.UserIdentity) {
		u.Email = email
	}
}

func WithName(first, last string) IdentityOption {
	return func(u *domain.UserIdentity) {
		u.FirstName = first
		u.LastName = last
	}
}

// NewTestIdentity returns a valid identity with a unique staff id.
func NewTestIdentity(opts ...IdentityOption) *domain.UserIdentity {
	n := testStaffCounter.Add(1)
	u := &domain.UserIdentity{
		Email:     fmt.Sprintf("staff%d@example.com", n),
		StaffID:   domain.StaffID(fmt.Sprintf("%d", 100+n)),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Selection options
type SelectionOption func(*domain.TaskSelection)

func WithDisabled() SelectionOption {
	return func(s *domain.TaskSelection) {
		s.Disabled = true
	}
}

// NewTestSelection returns an enabled work-mode task selection.
func NewTestSelection(taskID string, opts ...SelectionOption) domain.TaskSelection {
	s := domain.TaskSelection{
		ProjectID:   "7",
		ProjectName: "Intranet",
		TaskID:      taskID,
		TaskName:    "Task " + taskID,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Journal entry options
type EntryOption func(*domain.JournalEntry)

func WithOutcome(o domain.SessionOutcome) EntryOption {
	return func(e *domain.JournalEntry) {
		e.Outcome = o
	}
}

func WithEntryMode(m domain.Mode) EntryOption {
	return func(e *domain.JournalEntry) {
		e.Mode = m
	}
}

func WithStartedAt(t time.Time) EntryOption {
	return func(e *domain.JournalEntry) {
		e.StartedAt = t
	}
}

func WithCall(endpoint string, err error) EntryOption {
	return func(e *domain.JournalEntry) {
		c := domain.CallOutcome{Endpoint: endpoint, Success: err == nil}
		if err != nil {
			c.Error = err.Error()
		}
		e.Calls = append(e.Calls, c)
	}
}

// NewTestJournalEntry returns a finished work session of ten minutes.
func NewTestJournalEntry(taskID string, opts ...EntryOption) *domain.JournalEntry {
	started := time.Now().UTC().Add(-10 * time.Minute).Truncate(time.Second)
	e := &domain.JournalEntry{
		ID:             uuid.New().String(),
		Mode:           domain.ModeWork,
		TaskID:         taskID,
		ProjectName:    "Intranet",
		TaskName:       "Task " + taskID,
		StartedAt:      started,
		EndedAt:        started.Add(10 * time.Minute),
		ElapsedSeconds: 600,
		Note:           "did the thing",
		Outcome:        domain.OutcomeFinished,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
