package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// httpClient implements API over JSON/HTTP.
type httpClient struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	observer Observer
}

// NewClient creates an API client for the backend rooted at endpoint.
// Every call is bounded by timeout; there are no retries.
func NewClient(endpoint string, timeout time.Duration, observer Observer) API {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		timeout:  timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) StartTaskSession(ctx context.Context, req StartSessionRequest) error {
	return c.do(ctx, http.MethodPost, PathStartTaskSession, req, nil)
}

func (c *httpClient) EndTaskSession(ctx context.Context, req EndSessionRequest) error {
	return c.do(ctx, http.MethodPost, PathEndTaskSession, req, nil)
}

func (c *httpClient) CheckIdleState(ctx context.Context) (bool, error) {
	var resp idleStateResponse
	if err := c.do(ctx, http.MethodGet, PathCheckIdleState, nil, &resp); err != nil {
		return false, err
	}
	return resp.Idle, nil
}

func (c *httpClient) CaptureActivityLog(ctx context.Context, req ActivityLogRequest) error {
	var resp statusResponse
	return c.do(ctx, http.MethodPost, PathCaptureActivityLog, req, &resp)
}

func (c *httpClient) InsertUserTimesheet(ctx context.Context, entries []TimesheetEntry) error {
	return c.do(ctx, http.MethodPost, PathInsertUserTimesheet, entries, nil)
}

func (c *httpClient) SendTimesheetEmail(ctx context.Context, req TimesheetEmailRequest) error {
	return c.do(ctx, http.MethodPost, PathSendTimesheetEmail, req, nil)
}

func (c *httpClient) StartScreenRecording(ctx context.Context, req ScreenRecordingRequest) error {
	return c.do(ctx, http.MethodPost, PathStartScreenRecording, req, nil)
}

func (c *httpClient) StopScreenRecording(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, PathStopScreenRecording, nil, nil)
}

func (c *httpClient) FilteredProjects(ctx context.Context, req ProjectsRequest) ([]Project, error) {
	var resp projectsResponse
	if err := c.do(ctx, http.MethodPost, PathFilteredProjects, req, &resp); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(resp.Projects))
	projects := make([]Project, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		id := string(p.ID)
		if seen[id] {
			continue
		}
		seen[id] = true
		name := firstNonEmpty(p.Name, p.ProjectName, "Unnamed Project")
		projects = append(projects, Project{ID: id, Name: name})
	}
	return projects, nil
}

func (c *httpClient) Tasks(ctx context.Context, projectID string) ([]Task, error) {
	var resp tasksResponse
	if err := c.do(ctx, http.MethodGet, PathTasks+url.PathEscape(projectID), nil, &resp); err != nil {
		return nil, err
	}

	// The backend answers {"status":"error"} with 200 when a project has no tasks.
	tasks := make([]Task, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, Task{
			ID:     string(t.ID),
			Name:   firstNonEmpty(t.Name, t.Subject, "Unnamed Task"),
			Status: string(t.Status),
		})
	}
	return tasks, nil
}

func (c *httpClient) StoreLogoutTime(ctx context.Context, req LogoutTimeRequest) error {
	return c.do(ctx, http.MethodPost, PathStoreLogoutTime, req, nil)
}

func (c *httpClient) ScreenshotInterval(ctx context.Context) (int, error) {
	var resp screenshotIntervalResponse
	if err := c.do(ctx, http.MethodGet, PathScreenshotInterval, nil, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, fmt.Errorf("%w: screenshot interval unavailable", ErrUnexpectedStatus)
	}
	return resp.IntervalSeconds, nil
}

func (c *httpClient) CacheUserProjects(ctx context.Context, req CacheProjectsRequest) error {
	var resp statusResponse
	return c.do(ctx, http.MethodPost, PathCacheUserProjects, req, &resp)
}

// SubmitFeedback fails with ErrRejected when the backend answers 200 with a
// non-success status.
func (c *httpClient) SubmitFeedback(ctx context.Context, req FeedbackRequest) error {
	var resp statusResponse
	if err := c.do(ctx, http.MethodPost, PathSubmitFeedback, req, &resp); err != nil {
		return err
	}
	if resp.Status != "success" {
		return fmt.Errorf("%w: %s", ErrRejected, firstNonEmpty(resp.Message, resp.Status, "no status"))
	}
	return nil
}

// do performs one request. A nil out discards the response body.
func (c *httpClient) do(ctx context.Context, method, path string, in, out any) error {
	start := time.Now()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	status, err := c.roundTrip(ctx, method, path, in, out)
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
	} else if err != nil && isConnectionError(err) {
		err = fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.observer.OnCallComplete(CallEvent{
		Endpoint:   path,
		Method:     method,
		StatusCode: status,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
		ErrorCode:  errorCode(err),
		Err:        err,
	})
	return err
}

func (c *httpClient) roundTrip(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return httpResp.StatusCode, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, httpResp.StatusCode, truncate(string(respBody), 200))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return httpResp.StatusCode, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return httpResp.StatusCode, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return httpResp.StatusCode, nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnexpectedStatus):
		return "STATUS"
	case errors.Is(err, ErrDecode):
		return "DECODE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
