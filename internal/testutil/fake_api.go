package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/focuspro/internal/backend"
)

// APICall is one call recorded by FakeAPI.
type APICall struct {
	Endpoint string
	Request  any
}

// FakeAPI is an in-memory backend.API that records every call. Errors can
// be injected per endpoint path.
type FakeAPI struct {
	mu       sync.Mutex
	calls    []APICall
	errs     map[string]error
	idle     bool
	Projects []backend.Project
	TaskList map[string][]backend.Task
	Interval int
}

// NewFakeAPI creates a FakeAPI with no injected errors.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{errs: make(map[string]error), TaskList: make(map[string][]backend.Task), Interval: 300}
}

// Fail makes calls to endpoint return err. A nil err clears the failure.
func (f *FakeAPI) Fail(endpoint string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, endpoint)
		return
	}
	f.errs[endpoint] = err
}

// SetIdle sets the value returned by the next CheckIdleState. Like the real
// backend, the flag resets after being read.
func (f *FakeAPI) SetIdle(idle bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idle = idle
}

// Calls returns the recorded calls to endpoint, or all calls when endpoint
// is empty.
func (f *FakeAPI) Calls(endpoint string) []APICall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []APICall
	for _, c := range f.calls {
		if endpoint == "" || c.Endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}

// Endpoints returns the endpoint of every recorded call in order, skipping
// the given noisy endpoints.
func (f *FakeAPI) Endpoints(skip ...string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if !contains(skip, c.Endpoint) {
			out = append(out, c.Endpoint)
		}
	}
	return out
}

func (f *FakeAPI) record(endpoint string, req any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, APICall{Endpoint: endpoint, Request: req})
	return f.errs[endpoint]
}

func (f *FakeAPI) StartTaskSession(_ context.Context, req backend.StartSessionRequest) error {
	return f.record(backend.PathStartTaskSession, req)
}

func (f *FakeAPI) EndTaskSession(_ context.Context, req backend.EndSessionRequest) error {
	return f.record(backend.PathEndTaskSession, req)
}

func (f *FakeAPI) CheckIdleState(_ context.Context) (bool, error) {
	if err := f.record(backend.PathCheckIdleState, nil); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	idle := f.idle
	f.idle = false
	return idle, nil
}

func (f *FakeAPI) CaptureActivityLog(_ context.Context, req backend.ActivityLogRequest) error {
	return f.record(backend.PathCaptureActivityLog, req)
}

func (f *FakeAPI) InsertUserTimesheet(_ context.Context, entries []backend.TimesheetEntry) error {
	return f.record(backend.PathInsertUserTimesheet, entries)
}

func (f *FakeAPI) SendTimesheetEmail(_ context.Context, req backend.TimesheetEmailRequest) error {
	return f.record(backend.PathSendTimesheetEmail, req)
}

func (f *FakeAPI) StartScreenRecording(_ context.Context, req backend.ScreenRecordingRequest) error {
	return f.record(backend.PathStartScreenRecording, req)
}

func (f *FakeAPI) StopScreenRecording(_ context.Context) error {
	return f.record(backend.PathStopScreenRecording, nil)
}

func (f *FakeAPI) FilteredProjects(_ context.Context, req backend.ProjectsRequest) ([]backend.Project, error) {
	if err := f.record(backend.PathFilteredProjects, req); err != nil {
		return nil, err
	}
	return f.Projects, nil
}

func (f *FakeAPI) Tasks(_ context.Context, projectID string) ([]backend.Task, error) {
	if err := f.record(backend.PathTasks, projectID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.TaskList[projectID], nil
}

func (f *FakeAPI) StoreLogoutTime(_ context.Context, req backend.LogoutTimeRequest) error {
	return f.record(backend.PathStoreLogoutTime, req)
}

func (f *FakeAPI) ScreenshotInterval(_ context.Context) (int, error) {
	if err := f.record(backend.PathScreenshotInterval, nil); err != nil {
		return 0, err
	}
	return f.Interval, nil
}

func (f *FakeAPI) CacheUserProjects(_ context.Context, req backend.CacheProjectsRequest) error {
	return f.record(backend.PathCacheUserProjects, req)
}

func (f *FakeAPI) SubmitFeedback(_ context.Context, req backend.FeedbackRequest) error {
	return f.record(backend.PathSubmitFeedback, req)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var _ backend.API = (*FakeAPI)(nil)
