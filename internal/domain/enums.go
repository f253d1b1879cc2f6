package domain

// Mode selects which backend calls and UI affordances apply to a session.
type Mode string

const (
	ModeWork    Mode = "work"
	ModeMeeting Mode = "meeting"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeWork || m == ModeMeeting
}

// State is the position of the session timer in its lifecycle.
type State string

const (
	StateIdle    State = "idle0"
	StateRunning State = "running"
	StatePaused  State = "paused"
	// StateBreak is a user-requested pause. The session stays open and
	// resumes with its elapsed time intact.
	StateBreak State = "break"
)

// ActivityType is the wire value of the activity_type field sent with
// every activity log record.
type ActivityType string

const (
	ActivityWorking ActivityType = "working"
	ActivityMeeting ActivityType = "meeting"
	ActivityIdle    ActivityType = "idle"
)

// SessionOutcome records how a session left the Running/Paused states.
type SessionOutcome string

const (
	OutcomeFinished  SessionOutcome = "finished"
	OutcomeIdleSaved SessionOutcome = "idle_saved"
	OutcomeExitSaved SessionOutcome = "exit_saved"
)

// Language codes supported by the translation tables.
const (
	LangEnglish = "en"
	LangTurkish = "tr"
)
