package domain

import "time"

// MeetingTaskID is the task id reported for every meeting-mode session.
const MeetingTaskID = "meeting"

// TaskSelection is the project/task pair picked by the operator before a
// work session starts.
type TaskSelection struct {
	ProjectID   string
	ProjectName string
	TaskID      string
	TaskName    string
	Disabled    bool
}

// Empty reports whether no task has been picked.
func (s TaskSelection) Empty() bool {
	return s.TaskID == ""
}

// MeetingSelection is the synthetic selection used for meeting sessions.
func MeetingSelection() TaskSelection {
	return TaskSelection{
		ProjectName: "Meeting",
		TaskID:      MeetingTaskID,
		TaskName:    "Meeting Session",
	}
}

// Session is one continuous timed work or meeting interval.
type Session struct {
	Mode           Mode
	TaskID         string
	ProjectName    string
	TaskName       string
	StartTimeUnix  int64
	ElapsedSeconds int
	Running        bool
}

// IdleEvent is created when the backend reports the operator idle.
type IdleEvent struct {
	TriggeredAt time.Time
}

// TriggeredAtUnixMilli returns the trigger time in unix milliseconds.
func (e IdleEvent) TriggeredAtUnixMilli() int64 {
	return e.TriggeredAt.UnixMilli()
}
