package demoapi

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// MetricsResponse is the payload served on /api/metrics. responseTime is
// milliseconds in [50,150) and cacheHitRate is a percentage in [60,100);
// both are synthetic values for exercising dashboards and alert rules.
type MetricsResponse struct {
	ActiveUsers  int `json:"activeUsers"`
	ResponseTime int `json:"responseTime"`
	CacheHitRate int `json:"cacheHitRate"`
}

// Handler serves the demo API endpoints.
type Handler struct {
	users    *UserCache
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewHandler builds a Handler over a cached store.
func NewHandler(users *UserCache, logger zerolog.Logger) *Handler {
	return &Handler{
		users:    users,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(u); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, "invalid field: "+verrs[0].Field())
			return
		}
		writeError(w, http.StatusBadRequest, "validation failed")
		return
	}

	created, err := h.users.Create(r.Context(), u)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create user")
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	h.logger.Info().Int64("user_id", created.ID).Msg("user created")
	writeJSON(w, http.StatusCreated, created)
}

// AppMetrics handles GET /api/metrics.
func (h *Handler) AppMetrics(w http.ResponseWriter, r *http.Request) {
	count, err := h.users.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count users")
		writeError(w, http.StatusInternalServerError, "failed to count users")
		return
	}

	// The top-level rand functions are safe for concurrent handlers.
	writeJSON(w, http.StatusOK, MetricsResponse{
		ActiveUsers:  count,
		ResponseTime: rand.Intn(100) + 50,
		CacheHitRate: rand.Intn(40) + 60,
	})
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
