// Package httpapi exposes the identity core over HTTP: registration,
// login, the current-user endpoint, and the bearer-token guard consumed
// by the rest of the API.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/feas-project/feas-server/internal/common"
	"github.com/feas-project/feas-server/internal/logging"
	"github.com/feas-project/feas-server/internal/server/users"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

// Handler wires the HTTP auth endpoints to the users service.
type Handler struct {
	logger     logging.Logger
	users      *users.Service
	corsOrigin string
	version    string
}

func NewHandler(l logging.Logger, us *users.Service, corsOrigin, version string) *Handler {
	return &Handler{
		logger:     l.With("module", "httpapi"),
		users:      us,
		corsOrigin: corsOrigin,
		version:    version,
	}
}

// Register wires all routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)
	mux.Handle("GET /api/v1/auth/me", h.RequireUser(http.HandlerFunc(h.handleMe)))
	mux.HandleFunc("POST /api/v1/auth/logout", h.handleLogout)

	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		registrations.WithLabelValues("malformed").Inc()
		writeError(w, http.StatusUnprocessableEntity, "malformed_input", "invalid request body")
		return
	}

	res, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.writeServiceError(w, r, err, "register")
		registrations.WithLabelValues("error").Inc()
		return
	}

	registrations.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, newTokenResponse(res))
}

// handleLogin accepts the OAuth2 password-grant form shape: the email
// travels in the "username" field.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logins.WithLabelValues("malformed").Inc()
		writeError(w, http.StatusUnprocessableEntity, "malformed_input", "invalid form body")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		logins.WithLabelValues("malformed").Inc()
		writeError(w, http.StatusUnprocessableEntity, "malformed_input", "username and password are required")
		return
	}

	res, err := h.users.Login(r.Context(), email, password)
	if err != nil {
		h.writeServiceError(w, r, err, "login")
		logins.WithLabelValues("rejected").Inc()
		return
	}

	logins.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, newTokenResponse(res))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		// RequireUser already guards this route.
		writeUnauthenticated(w)
		return
	}
	writeJSON(w, http.StatusOK, newUserPayload(user))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; the server has nothing to invalidate.
	h.users.Logout()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"name": "FEAS", "version": h.version})
}

// writeServiceError maps service errors to client-visible statuses.
// Internal details never reach the response body.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, common.ErrEmailAlreadyExists):
		writeError(w, http.StatusBadRequest, "duplicate_identity", "Email already registered")
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "malformed_input", err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Incorrect email or password")
	case errors.Is(err, common.ErrUnauthorized):
		writeUnauthenticated(w)
	default:
		h.logger.Error(r.Context(), "request failed", "op", op, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", "Internal server error")
	}
}
