package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nexora/backend/internal/metrics"
	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/service"
	"github.com/nexora/backend/pkg/auth"
)

// AdminConfig carries the cookie settings for the admin session.
type AdminConfig struct {
	SessionTTL   time.Duration
	SecureCookie bool
}

// AdminHandler handles admin login/logout and message moderation.
type AdminHandler struct {
	authService    service.AdminAuthService
	messageService service.MessageService
	cfg            AdminConfig
	validate       *validator.Validate
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(authService service.AdminAuthService, messageService service.MessageService, cfg AdminConfig) *AdminHandler {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = auth.SessionDuration
	}
	return &AdminHandler{
		authService:    authService,
		messageService: messageService,
		cfg:            cfg,
		validate:       newValidator(),
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"username": "Username is required",
	"password": "Password is required",
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Invalid request body"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if errs := validateRequest(h.validate, &req, loginMessages); len(errs) > 0 {
		writeValidationFailed(w, errs)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrAdminNotConfigured):
		metrics.AdminLogins.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("admin login attempted without configured credentials")
		writeJSON(w, http.StatusInternalServerError, apiResponse{Message: "Admin credentials not configured"})
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		metrics.AdminLogins.WithLabelValues(metrics.ResultInvalid).Inc()
		slog.Warn("admin login failed", "remote_addr", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, apiResponse{Message: "Invalid credentials"})
		return
	case err != nil:
		metrics.AdminLogins.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("admin login error", "error", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Message: "Internal server error"})
		return
	}

	metrics.AdminLogins.WithLabelValues(metrics.ResultSuccess).Inc()
	auth.SetSessionCookie(w, token, h.cfg.SessionTTL, h.cfg.SecureCookie)
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Login successful"})
}

// Logout handles POST /api/admin/logout. It always succeeds.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cfg.SecureCookie)
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Logged out successfully"})
}

type authStatusResponse struct {
	Success       bool `json:"success"`
	Authenticated bool `json:"authenticated"`
}

// AuthStatus handles GET /api/admin/auth-status (gated).
func (h *AdminHandler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.AdminFromContext(r.Context())
	writeJSON(w, http.StatusOK, authStatusResponse{Success: ok, Authenticated: ok})
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type listData struct {
	Messages   []*model.Message `json:"messages"`
	Pagination pagination       `json:"pagination"`
}

// ListMessages handles GET /api/admin/messages (gated).
// Query params: page (default 1), limit (default 10, max 100), status.
func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := model.MessageListOptions{
		Page:  atoiOr(q.Get("page"), model.DefaultPage),
		Limit: atoiOr(q.Get("limit"), model.DefaultLimit),
	}
	if st, ok := model.ParseMessageStatus(q.Get("status")); ok {
		opts.Status = st
	}
	opts = opts.Normalized()

	page, err := h.messageService.List(r.Context(), opts)
	if err != nil {
		writeStoreError(w, r, err, "Error fetching messages")
		return
	}

	messages := page.Messages
	if messages == nil {
		messages = []*model.Message{}
	}
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data: listData{
			Messages: messages,
			Pagination: pagination{
				Page:  opts.Page,
				Limit: opts.Limit,
				Total: page.Total,
				Pages: model.Pages(page.Total, opts.Limit),
			},
		},
	})
}

// DeleteMessage handles DELETE /api/admin/message/{id} (gated).
func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.messageService.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "Error deleting message")
		return
	}
	metrics.MessagesDeleted.Inc()
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Message deleted successfully"})
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

var updateStatusMessages = map[string]string{
	"status": "Status must be one of pending, accepted, rejected",
}

// UpdateStatus handles PATCH /api/admin/message/{id}/status (gated).
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Invalid request body"})
		return
	}
	req.Status = strings.TrimSpace(req.Status)
	if errs := validateRequest(h.validate, &req, updateStatusMessages); len(errs) > 0 {
		writeValidationFailed(w, errs)
		return
	}

	msg, err := h.messageService.UpdateStatus(r.Context(), r.PathValue("id"), model.MessageStatus(req.Status))
	if err != nil {
		writeStoreError(w, r, err, "Error updating message")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Message status updated",
		Data:    msg,
	})
}

// atoiOr parses s as a positive integer, returning def otherwise.
func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
