package tracker

import "errors"

// Validation errors. Each aborts the operation and is also pushed to the
// presenter as a blocking notice.
var (
	ErrNoIdentity     = errors.New("no logged-in user")
	ErrNoTaskSelected = errors.New("no task selected")
	ErrSessionActive  = errors.New("a session is already active")
	ErrNotRunning     = errors.New("no running session")
	ErrNotPaused      = errors.New("session is not paused for idle")
	ErrNotOnBreak     = errors.New("session is not on a break")
	ErrMinimumWork    = errors.New("session shorter than the minimum work duration")
	ErrEmptyNote      = errors.New("session note is empty")
	ErrModeLocked     = errors.New("mode cannot change while a session is active")
	ErrInvalidMode    = errors.New("invalid mode")
	ErrClosed         = errors.New("controller is closed")
)
