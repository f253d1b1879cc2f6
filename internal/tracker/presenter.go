package tracker

import (
	"time"

	"github.com/alexanderramin/focuspro/internal/domain"
)

// Snapshot is the presentation state pushed after every transition and tick.
type Snapshot struct {
	State          domain.State
	Mode           domain.Mode
	TaskID         string
	ProjectName    string
	TaskName       string
	StartTimeUnix  int64
	ElapsedSeconds int
	Running        bool

	// Clock is HH:MM:SS and Summary the localized "N min M sec".
	Clock   string
	Summary string
	// Logging is the localized YES/NO recording indicator.
	Logging string
	// StateLabel is the localized WORK/MEETING/IDLE label.
	StateLabel string

	// ShowPickers is true when the project/task pickers apply (work mode).
	ShowPickers bool
	// IdleDeadline is when a pending idle auto-save fires; zero otherwise.
	IdleDeadline time.Time
	Language     string
}

// NoticeLevel grades a user-visible notification.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a toast. Blocking notices report a rejected operation.
type Notice struct {
	Level    NoticeLevel
	Message  string
	Blocking bool
}

// FinishPrompt asks the presentation layer to collect the session note.
type FinishPrompt struct {
	Mode        domain.Mode
	Title       string
	Description string
	Placeholder string
}

// Presenter receives state changes. Implementations must not call back into
// the controller synchronously.
type Presenter interface {
	Render(Snapshot)
	Notify(Notice)
	PromptFinish(FinishPrompt)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) Render(Snapshot)           {}
func (NopPresenter) Notify(Notice)             {}
func (NopPresenter) PromptFinish(FinishPrompt) {}
