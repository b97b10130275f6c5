package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rds-restore/internal/controller"
	"rds-restore/internal/selection"
	"rds-restore/internal/utils"
	"rds-restore/pkg/models"

	"github.com/sirupsen/logrus"
)

// Server serves the restore form and feeds its events through the event loop
type Server struct {
	loop   *controller.Loop
	logger *logrus.Logger
	port   int
	mux    *http.ServeMux
	now    func() time.Time
}

// APIResponse represents the API response format
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// IndexRequest selects a row or region by position
type IndexRequest struct {
	Index *int `json:"index"`
}

// RestoreRequest carries the name typed into the form
type RestoreRequest struct {
	Name string `json:"name"`
}

// InstanceRow is one line of the instance table
type InstanceRow struct {
	Identifier string         `json:"identifier"`
	Status     string         `json:"status"`
	Storage    string         `json:"storage"`
	MaxStorage string         `json:"max_storage"`
	Hint       models.RowHint `json:"hint"`
}

// SnapshotRow is one line of the snapshot table
type SnapshotRow struct {
	Identifier string         `json:"identifier"`
	Created    string         `json:"created"`
	Age        string         `json:"age"`
	Status     string         `json:"status"`
	Hint       models.RowHint `json:"hint"`
}

// StateResponse is the form state the page renders
type StateResponse struct {
	Region           string        `json:"region"`
	Regions          []string      `json:"regions"`
	Instances        []InstanceRow `json:"instances"`
	Snapshots        []SnapshotRow `json:"snapshots"`
	SelectedInstance int           `json:"selected_instance"`
	SelectedSnapshot int           `json:"selected_snapshot"`
	ProposedName     string        `json:"proposed_name"`
}

// NewServer creates a new web server instance
func NewServer(loop *controller.Loop, logger *logrus.Logger, port int) *Server {
	s := &Server{
		loop:   loop,
		logger: logger,
		port:   port,
		mux:    http.NewServeMux(),
		now:    time.Now,
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/state", s.handleState)
	s.mux.HandleFunc("/api/region", s.handleRegion)
	s.mux.HandleFunc("/api/refresh", s.handleRefresh)
	s.mux.HandleFunc("/api/instances/select", s.handleSelectInstance)
	s.mux.HandleFunc("/api/snapshots/select", s.handleSelectSnapshot)
	s.mux.HandleFunc("/api/restore", s.handleRestore)
	s.mux.HandleFunc("/api/activity", s.handleActivity)
	s.mux.HandleFunc("/api/activity/export", s.handleActivityExport)
	s.mux.HandleFunc("/api/close", s.handleClose)

	// Serve static files
	s.mux.HandleFunc("/", s.handleStaticFiles)

	return s
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Infof("Starting web server on http://localhost%s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Service is healthy",
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	s.respondWithState(w, http.StatusOK, APIResponse{Success: true})
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	s.handleIndexEvent(w, r, controller.SelectRegion)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	s.dispatch(w, controller.Event{Kind: controller.ClickRefresh})
}

func (s *Server) handleSelectInstance(w http.ResponseWriter, r *http.Request) {
	s.handleIndexEvent(w, r, controller.ClickInstanceRow)
}

func (s *Server) handleSelectSnapshot(w http.ResponseWriter, r *http.Request) {
	s.handleIndexEvent(w, r, controller.ClickSnapshotRow)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var req RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.WithError(err).Warn("Failed to decode restore request")
		s.jsonResponse(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid request: %v", err),
		})
		return
	}

	s.dispatch(w, controller.Event{Kind: controller.ClickRestore, Name: req.Name})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	entries := s.loop.Activity()
	s.jsonResponse(w, http.StatusOK, APIResponse{
		Success: true,
		Message: fmt.Sprintf("Retrieved %d entries", len(entries)),
		Data:    entries,
	})
}

// handleActivityExport serves the activity log as a downloadable JSON file
func (s *Server) handleActivityExport(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="rds-restore-activity-%s.json"`,
		s.now().UTC().Format("20060102-150405")))
	if err := s.loop.WriteActivity(w); err != nil {
		s.logger.WithError(err).Error("Failed to export activity log")
	}
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	s.dispatch(w, controller.Event{Kind: controller.WindowClosing})
}

func (s *Server) handleIndexEvent(w http.ResponseWriter, r *http.Request, kind controller.EventKind) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		if err == nil {
			err = errors.New("index is required")
		}
		s.jsonResponse(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid request: %v", err),
		})
		return
	}

	s.dispatch(w, controller.Event{Kind: kind, Index: *req.Index})
}

// dispatch runs ev on the loop and answers with the outcome and the new state
func (s *Server) dispatch(w http.ResponseWriter, ev controller.Event) {
	out, v, err := s.loop.DispatchView(ev)
	if err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	switch {
	case out.Defect:
		s.writeState(w, v, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   out.Err.Error(),
		})
	case out.Closed:
		s.jsonResponse(w, http.StatusOK, APIResponse{
			Success: true,
			Message: "Session ended",
		})
	case out.Err != nil:
		s.writeState(w, v, http.StatusBadGateway, APIResponse{
			Success: false,
			Error:   out.Message,
		})
	case out.Confirmation != nil:
		s.writeState(w, v, http.StatusOK, APIResponse{
			Success: true,
			Message: out.Message,
		})
	case out.Message != "":
		// validation rejection
		s.writeState(w, v, http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error:   out.Message,
		})
	default:
		s.writeState(w, v, http.StatusOK, APIResponse{Success: true})
	}
}

func (s *Server) respondWithState(w http.ResponseWriter, status int, resp APIResponse) {
	v, err := s.loop.View()
	if err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	s.writeState(w, v, status, resp)
}

func (s *Server) writeState(w http.ResponseWriter, v selection.View, status int, resp APIResponse) {
	resp.Data = s.stateResponse(v)
	s.jsonResponse(w, status, resp)
}

func (s *Server) stateResponse(v selection.View) StateResponse {
	now := s.now()

	resp := StateResponse{
		Region:           v.Region,
		Regions:          v.Regions,
		Instances:        make([]InstanceRow, 0, len(v.Instances)),
		Snapshots:        make([]SnapshotRow, 0, len(v.Snapshots)),
		SelectedInstance: v.SelectedInstance,
		SelectedSnapshot: v.SelectedSnapshot,
		ProposedName:     v.ProposedName,
	}
	for _, inst := range v.Instances {
		resp.Instances = append(resp.Instances, InstanceRow{
			Identifier: inst.Identifier,
			Status:     inst.Status,
			Storage:    utils.FormatStorage(inst.AllocatedStorage),
			MaxStorage: utils.FormatStorage(inst.MaxAllocatedStorage),
			Hint:       inst.Hint,
		})
	}
	for _, snap := range v.Snapshots {
		resp.Snapshots = append(resp.Snapshots, SnapshotRow{
			Identifier: snap.Identifier,
			Created:    utils.FormatTimestamp(snap.CreatedAt),
			Age:        utils.FormatAge(snap.CreatedAt, now),
			Status:     snap.Status,
			Hint:       snap.Hint,
		})
	}
	return resp
}

func (s *Server) handleStaticFiles(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, getIndexHTML())
		return
	}

	if r.URL.Path == "/css/style.css" {
		w.Header().Set("Content-Type", "text/css")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, getStyleCSS())
		return
	}

	if r.URL.Path == "/js/app.js" {
		w.Header().Set("Content-Type", "application/javascript")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, getAppJS())
		return
	}

	s.jsonResponse(w, http.StatusNotFound, APIResponse{
		Success: false,
		Error:   "Not found",
	})
}

// Helper methods

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	s.jsonResponse(w, http.StatusMethodNotAllowed, APIResponse{
		Success: false,
		Error:   "Method not allowed",
	})
	return false
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode JSON response")
	}
}
