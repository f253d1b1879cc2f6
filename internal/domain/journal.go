package domain

import "time"

// JournalEntry is the local record of a session that reached a terminal
// transition, kept so that dropped backend writes remain visible.
type JournalEntry struct {
	ID             string
	Mode           Mode
	TaskID         string
	ProjectName    string
	TaskName       string
	StartedAt      time.Time
	EndedAt        time.Time
	ElapsedSeconds int
	Note           string
	Outcome        SessionOutcome
	Calls          []CallOutcome
	CreatedAt      time.Time
}

// Synced reports whether every backend call issued for the entry succeeded.
func (e *JournalEntry) Synced() bool {
	for _, c := range e.Calls {
		if !c.Success {
			return false
		}
	}
	return true
}

// CallOutcome is the result of one backend call issued while closing a
// session.
type CallOutcome struct {
	Endpoint string
	Success  bool
	Error    string
}
