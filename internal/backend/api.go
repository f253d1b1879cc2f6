package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/alexanderramin/focuspro/internal/domain"
)

// Endpoint paths. These are part of the existing backend contract.
const (
	PathStartTaskSession     = "/start_task_session"
	PathEndTaskSession       = "/end_task_session"
	PathCheckIdleState       = "/check_idle_state"
	PathCaptureActivityLog   = "/capture_activity_log"
	PathInsertUserTimesheet  = "/insert_user_timesheet"
	PathSendTimesheetEmail   = "/send_timesheet_email"
	PathStartScreenRecording = "/start_screen_recording"
	PathStopScreenRecording  = "/stop_screen_recording"
	PathFilteredProjects     = "/get_ai_filtered_projects"
	PathTasks                = "/get_tasks/"
	PathStoreLogoutTime      = "/api/store_logout_time"
	PathScreenshotInterval   = "/api/config/screenshot-interval"
	PathCacheUserProjects    = "/cache_user_projects"
	PathSubmitFeedback       = "/submit-feedback"
)

// API is the typed client for the time-tracking backend, one method per
// endpoint. Implementations perform exactly one attempt per call.
type API interface {
	StartTaskSession(ctx context.Context, req StartSessionRequest) error
	EndTaskSession(ctx context.Context, req EndSessionRequest) error
	CheckIdleState(ctx context.Context) (bool, error)
	CaptureActivityLog(ctx context.Context, req ActivityLogRequest) error
	InsertUserTimesheet(ctx context.Context, entries []TimesheetEntry) error
	SendTimesheetEmail(ctx context.Context, req TimesheetEmailRequest) error
	StartScreenRecording(ctx context.Context, req ScreenRecordingRequest) error
	StopScreenRecording(ctx context.Context) error
	FilteredProjects(ctx context.Context, req ProjectsRequest) ([]Project, error)
	Tasks(ctx context.Context, projectID string) ([]Task, error)
	StoreLogoutTime(ctx context.Context, req LogoutTimeRequest) error
	ScreenshotInterval(ctx context.Context) (int, error)
	CacheUserProjects(ctx context.Context, req CacheProjectsRequest) error
	SubmitFeedback(ctx context.Context, req FeedbackRequest) error
}

type StartSessionRequest struct {
	Email     string `json:"email"`
	StaffID   string `json:"staff_id"`
	TaskID    string `json:"task_id"`
	StartTime int64  `json:"start_time"`
}

type EndSessionRequest struct {
	Email   string `json:"email"`
	StaffID string `json:"staff_id"`
	TaskID  string `json:"task_id"`
	EndTime int64  `json:"end_time"`
	Note    string `json:"note"`
}

type idleStateResponse struct {
	Idle bool `json:"idle"`
}

// ActivityLogRequest is one periodic activity record. Timestamp is
// ISO-8601 in UTC.
type ActivityLogRequest struct {
	Email        string              `json:"email"`
	StaffID      string              `json:"staff_id"`
	TaskID       string              `json:"task_id"`
	ProjectName  string              `json:"project_name"`
	TaskName     string              `json:"task_name"`
	Timestamp    string              `json:"timestamp"`
	ActivityType domain.ActivityType `json:"activity_type"`
	TimerSeconds int                 `json:"timer_seconds"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MeetingRecord describes a meeting attached to a timesheet or logout record.
type MeetingRecord struct {
	DurationSeconds int    `json:"duration_seconds"`
	Notes           string `json:"notes"`
}

// TimesheetEntry is one row of POST /insert_user_timesheet. Start and end
// times are wall-clock HH:MM:SS strings.
type TimesheetEntry struct {
	TaskID     string          `json:"task_id"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
	StaffID    string          `json:"staff_id"`
	HourlyRate string          `json:"hourly_rate"`
	Note       string          `json:"note"`
	Meetings   []MeetingRecord `json:"meetings,omitempty"`
	Email      string          `json:"email"`
}

type TimesheetEmailRequest struct {
	Email     string         `json:"email"`
	Timesheet TimesheetEntry `json:"timesheet"`
}

type ScreenRecordingRequest struct {
	Email   string `json:"email"`
	Project string `json:"project"`
	Task    string `json:"task"`
}

type ProjectsRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Project is a selectable project.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is a selectable task of a project.
type Task struct {
	ID     string
	Name   string
	Status string
}

type projectsResponse struct {
	Projects []struct {
		ID          flexString `json:"id"`
		Name        string     `json:"name"`
		ProjectName string     `json:"projectname"`
	} `json:"projects"`
}

type tasksResponse struct {
	Status string `json:"status"`
	Tasks  []struct {
		ID      flexString `json:"id"`
		Name    string     `json:"name"`
		Subject string     `json:"subject"`
		Status  flexString `json:"status"`
	} `json:"tasks"`
}

// LogoutTimeRequest persists a meeting-mode session when the client exits.
type LogoutTimeRequest struct {
	Email         string          `json:"email"`
	StaffID       string          `json:"staff_id"`
	TotalDuration string          `json:"total_duration"`
	TotalSeconds  int             `json:"total_seconds"`
	Meetings      []MeetingRecord `json:"meetings"`
}

// CacheProjectsRequest hands the loaded project list to the backend's
// per-user cache.
type CacheProjectsRequest struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Projects []Project `json:"projects"`
}

type FeedbackRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type screenshotIntervalResponse struct {
	Success         bool `json:"success"`
	IntervalSeconds int  `json:"interval_seconds"`
}

// flexString decodes a JSON string or number into its string form.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
