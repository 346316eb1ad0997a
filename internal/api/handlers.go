// Package api exposes HTTP handlers for the workout ledger service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"example.com/workoutledger/internal/auth"
	"example.com/workoutledger/internal/domain"
	"example.com/workoutledger/internal/observability"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	issuer  auth.Issuer
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, issuer auth.Issuer) *Handler {
	return &Handler{service: service, issuer: issuer}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/auth/register", h.register)
	mux.HandleFunc("/v1/auth/login", h.login)
	mux.HandleFunc("/v1/workouts", h.workouts)
	mux.HandleFunc("/v1/workouts/summary", h.workoutSummary)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// RegisterResponse carries the new account identifier.
type RegisterResponse struct {
	AccountID string `json:"account_id"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "unable to parse body")
		return
	}

	accountID, err := h.service.RegisterAccount(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.RecordAccountRegistered()
	writeJSON(w, http.StatusCreated, RegisterResponse{AccountID: accountID})
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "unable to parse body")
		return
	}

	userID, err := h.service.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		observability.RecordLogin(false)
		writeDomainError(w, err)
		return
	}

	token, expiresAt, err := h.issuer.Sign(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	observability.RecordLogin(true)
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *Handler) workouts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.recordWorkout(w, r)
	case http.MethodGet:
		h.listWorkouts(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

// RecordWorkoutRequest is the payload for POST /v1/workouts.
type RecordWorkoutRequest struct {
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
	Note     string  `json:"note,omitempty"`
}

// RecordWorkoutResponse acknowledges the appended entry.
type RecordWorkoutResponse struct {
	RecordID   string    `json:"record_id"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h *Handler) recordWorkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "token_invalid", "missing bearer token")
		return
	}

	var req RecordWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "unable to parse body")
		return
	}

	record, err := h.service.RecordWorkout(r.Context(), claims.UserID, domain.RecordWorkoutInput{
		Exercise: req.Exercise,
		Sets:     req.Sets,
		Reps:     req.Reps,
		Weight:   req.Weight,
		Note:     req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, RecordWorkoutResponse{RecordID: record.ID, RecordedAt: record.RecordedAt})
}

// WorkoutView exposes one ledger entry.
type WorkoutView struct {
	RecordID   string    `json:"record_id"`
	Exercise   string    `json:"exercise"`
	Sets       int       `json:"sets"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	Volume     float64   `json:"volume"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ListWorkoutsResponse packages the full history, most recent first.
type ListWorkoutsResponse struct {
	Workouts []WorkoutView `json:"workouts"`
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "token_invalid", "missing bearer token")
		return
	}

	records, err := h.service.ListWorkouts(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]WorkoutView, 0, len(records))
	for _, rec := range records {
		views = append(views, toWorkoutView(rec))
	}
	writeJSON(w, http.StatusOK, ListWorkoutsResponse{Workouts: views})
}

// ProgressPointView is one entry of an exercise's progress series.
type ProgressPointView struct {
	Date   time.Time `json:"date"`
	Sets   int       `json:"sets"`
	Reps   int       `json:"reps"`
	Weight float64   `json:"weight"`
	Volume float64   `json:"volume"`
}

// ExerciseProgressView is the series plus trend for one exercise.
type ExerciseProgressView struct {
	Entries []ProgressPointView `json:"entries"`
	Delta   float64             `json:"delta"`
	Trend   string              `json:"trend"`
}

// SummaryResponse carries the aggregates derived from the current ledger.
type SummaryResponse struct {
	PersonalRecords map[string]float64              `json:"personal_records"`
	Progress        map[string]ExerciseProgressView `json:"progress"`
}

func (h *Handler) workoutSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "token_invalid", "missing bearer token")
		return
	}

	summary, err := h.service.WorkoutSummary(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	progress := make(map[string]ExerciseProgressView, len(summary.Progress))
	for exercise, p := range summary.Progress {
		entries := make([]ProgressPointView, 0, len(p.Entries))
		for _, e := range p.Entries {
			entries = append(entries, ProgressPointView{
				Date:   e.Date,
				Sets:   e.Sets,
				Reps:   e.Reps,
				Weight: e.Weight,
				Volume: e.Volume,
			})
		}
		progress[exercise] = ExerciseProgressView{Entries: entries, Delta: p.Delta, Trend: string(p.Trend)}
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		PersonalRecords: summary.PersonalRecords,
		Progress:        progress,
	})
}

func toWorkoutView(rec domain.WorkoutRecord) WorkoutView {
	return WorkoutView{
		RecordID:   rec.ID,
		Exercise:   rec.Exercise,
		Sets:       rec.Sets,
		Reps:       rec.Reps,
		Weight:     rec.Weight,
		Volume:     rec.Volume(),
		Note:       rec.Note,
		RecordedAt: rec.RecordedAt,
	}
}

// writeDomainError maps domain errors to stable codes. Validation failures are
// reported before any storage access happened; storage failures surface as a
// distinct retryable class.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMalformedRequest):
		writeError(w, http.StatusBadRequest, "malformed_request", err.Error())
	case errors.Is(err, domain.ErrDuplicateUser):
		writeError(w, http.StatusBadRequest, "duplicate_user", err.Error())
	case errors.Is(err, domain.ErrInvalidWorkoutData):
		writeError(w, http.StatusBadRequest, "invalid_workout_data", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
