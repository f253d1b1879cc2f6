// Package devserver is an in-memory implementation of the time-tracking
// backend contract, used by integration tests and for running the client
// without the production backend.
package devserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

// Request is a request received by the server, kept for assertions.
type Request struct {
	Method string
	Path   string
	Body   json.RawMessage
}

// Decode unmarshals the request body into v.
func (r Request) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Task is a task fixture served by GET /get_tasks/{projectID}.
type Task struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status int    `json:"status"`
}

type project struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	tasks []Task
}

// Server holds the fake backend state.
type Server struct {
	mu                 sync.Mutex
	router             *mux.Router
	idle               bool
	recording          bool
	projects           []project
	requests           []Request
	failures           map[string]int
	screenshotInterval int
	projectCache       map[string]json.RawMessage
	feedback           []Feedback
}

// Feedback is a message received on POST /submit-feedback.
type Feedback struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// New creates an empty server with routes registered.
func New() *Server {
	s := &Server{
		failures:           make(map[string]int),
		screenshotInterval: 300,
		projectCache:       make(map[string]json.RawMessage),
	}

	r := mux.NewRouter()
	r.Use(s.recordRequests)

	r.HandleFunc("/start_task_session", s.handleAck).Methods(http.MethodPost)
	r.HandleFunc("/end_task_session", s.handleEndTaskSession).Methods(http.MethodPost)
	r.HandleFunc("/check_idle_state", s.handleCheckIdleState).Methods(http.MethodGet)
	r.HandleFunc("/set_idle_flag", s.handleSetIdleFlag).Methods(http.MethodPost)
	r.HandleFunc("/capture_activity_log", s.handleStatusSuccess).Methods(http.MethodPost)
	r.HandleFunc("/insert_user_timesheet", s.handleInsertTimesheet).Methods(http.MethodPost)
	r.HandleFunc("/send_timesheet_email", s.handleAck).Methods(http.MethodPost)
	r.HandleFunc("/start_screen_recording", s.handleScreenRecording(true)).Methods(http.MethodPost)
	r.HandleFunc("/stop_screen_recording", s.handleScreenRecording(false)).Methods(http.MethodPost)
	r.HandleFunc("/get_ai_filtered_projects", s.handleProjects).Methods(http.MethodPost)
	r.HandleFunc("/get_tasks/{projectID:[0-9]+}", s.handleTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/store_logout_time", s.handleStatusSuccess).Methods(http.MethodPost)
	r.HandleFunc("/api/config/screenshot-interval", s.handleScreenshotInterval).Methods(http.MethodGet)
	r.HandleFunc("/cache_user_projects", s.handleCacheUserProjects).Methods(http.MethodPost)
	r.HandleFunc("/load_user_projects/{email}", s.handleLoadUserProjects).Methods(http.MethodGet)
	r.HandleFunc("/submit-feedback", s.handleSubmitFeedback).Methods(http.MethodPost)

	s.router = r
	return s
}

// Handler returns the HTTP handler serving the backend routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// AddProject registers a project and its tasks.
func (s *Server) AddProject(id int, name string, tasks ...Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, project{ID: id, Name: name, tasks: tasks})
}

// SetIdle sets the flag reported (once) by GET /check_idle_state.
func (s *Server) SetIdle(idle bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idle = idle
}

// Recording reports whether screen recording is currently started.
func (s *Server) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// FailPath makes every request to path answer with status until cleared
// with status 0.
func (s *Server) FailPath(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// FeedbackReceived returns the feedback messages submitted so far.
func (s *Server) FeedbackReceived() []Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Feedback(nil), s.feedback...)
}

// Requests returns the recorded requests for path, or all requests when
// path is empty.
func (s *Server) Requests(path string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, r := range s.requests {
		if path == "" || r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
		status, fail := s.failures[r.URL.Path]
		s.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]string{"error": "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatusSuccess(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleEndTaskSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email   string `json:"email"`
		StaffID string `json:"staff_id"`
		TaskID  string `json:"task_id"`
		EndTime int64  `json:"end_time"`
		Note    string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if body.Email == "" || body.StaffID == "" || body.TaskID == "" || body.EndTime == 0 || body.Note == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCheckIdleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	wasIdle := s.idle
	s.idle = false
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"idle": wasIdle})
}

func (s *Server) handleSetIdleFlag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Idle bool `json:"idle"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.SetIdle(body.Idle)
	writeJSON(w, http.StatusOK, map[string]any{"status": "idle flag updated", "idle": body.Idle})
}

func (s *Server) handleInsertTimesheet(w http.ResponseWriter, r *http.Request) {
	var rows []map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil || len(rows) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expected a non-empty array"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "inserted": len(rows)})
}

func (s *Server) handleScreenRecording(start bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.recording = start
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Email == "" && body.Username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "No email or username provided."})
		return
	}

	s.mu.Lock()
	projects := append([]project(nil), s.projects...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["projectID"]

	s.mu.Lock()
	var tasks []Task
	for _, p := range s.projects {
		if strconv.Itoa(p.ID) == id {
			for _, t := range p.tasks {
				if t.Status != 5 {
					tasks = append(tasks, t)
				}
			}
		}
	}
	s.mu.Unlock()

	if len(tasks) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"status": "error", "message": "No tasks found for this project."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "tasks": tasks})
}

func (s *Server) handleCacheUserProjects(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string          `json:"email"`
		Username string          `json:"username"`
		Projects json.RawMessage `json:"projects"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Email == "" || isEmptyJSON(body.Projects) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Missing email or projects"})
		return
	}

	s.mu.Lock()
	s.projectCache[body.Email] = body.Projects
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "User cache saved."})
}

func (s *Server) handleLoadUserProjects(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	s.mu.Lock()
	projects, ok := s.projectCache[email]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "error", "message": "No cached data for user"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{"email": email, "projects": projects}})
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var fb Feedback
	_ = json.NewDecoder(r.Body).Decode(&fb)
	if fb.Email == "" || fb.Username == "" || fb.Message == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "error", "message": "Missing required fields"})
		return
	}

	s.mu.Lock()
	s.feedback = append(s.feedback, fb)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Feedback sent successfully!"})
}

func isEmptyJSON(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "[]", "{}", `""`:
		return true
	}
	return false
}

func (s *Server) handleScreenshotInterval(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	interval := s.screenshotInterval
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "interval_seconds": interval})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
