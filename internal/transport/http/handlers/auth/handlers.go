package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"storeops/internal/domain/audit"
	"storeops/internal/domain/auth"
	"storeops/internal/transport/http/api"
	"storeops/internal/transport/http/middleware"
	"storeops/internal/transport/http/shared"
)

type Handler struct {
	Auth  *auth.Service
	Audit *audit.Service
}

func NewHandler(authService *auth.Service, auditService *audit.Service) *Handler {
	return &Handler{Auth: authService, Audit: auditService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	token, user, err := h.Auth.Login(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", requestID)
		return
	}

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), user.ID, "auth.login", "user", user.ID, requestID, shared.ClientIP(r), nil, nil); err != nil {
			slog.Warn("audit login failed", "userId", user.ID, "err", err)
		}
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": user.ID, "email": user.Email, "role": user.Role},
	}, requestID)
}

// HandleLogout exists so clients have a definitive end-of-session call to
// audit. Tokens are stateless; the client discards its copy.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if user, ok := middleware.GetUser(r.Context()); ok && h.Audit != nil {
		if err := h.Audit.Record(r.Context(), user.UserID, "auth.logout", "user", user.UserID, requestID, shared.ClientIP(r), nil, nil); err != nil {
			slog.Warn("audit logout failed", "userId", user.UserID, "err", err)
		}
	}
	api.Success(w, map[string]string{"status": "logged_out"}, requestID)
}
