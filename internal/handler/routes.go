package handler

import (
	"net/http"
	"time"

	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/internal/service"
	"github.com/nexora/backend/pkg/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig wires the services into the HTTP routes.
type RouterConfig struct {
	DB             repository.DB
	Messages       service.MessageService
	AdminAuth      service.AdminAuthService
	Sessions       auth.SessionValidator
	AllowedOrigins []string
	SessionTTL     time.Duration
	Production     bool
}

// NewRouter builds the full HTTP handler with middleware applied.
func NewRouter(rc RouterConfig) http.Handler {
	h := New(rc.DB, rc.AllowedOrigins)
	contactHandler := NewContactHandler(rc.Messages)
	adminHandler := NewAdminHandler(rc.AdminAuth, rc.Messages, AdminConfig{
		SessionTTL:   rc.SessionTTL,
		SecureCookie: rc.Production,
	})
	gate := auth.RequireAdmin(rc.Sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public intake
	mux.HandleFunc("POST /api/contact/post/message", contactHandler.Submit)

	// Admin session
	mux.HandleFunc("POST /api/admin/login", adminHandler.Login)
	mux.HandleFunc("POST /api/admin/logout", adminHandler.Logout)

	// Gated admin endpoints
	mux.Handle("GET /api/admin/auth-status", gate(http.HandlerFunc(adminHandler.AuthStatus)))
	mux.Handle("GET /api/admin/messages", gate(http.HandlerFunc(adminHandler.ListMessages)))
	mux.Handle("DELETE /api/admin/message/{id}", gate(http.HandlerFunc(adminHandler.DeleteMessage)))
	mux.Handle("PATCH /api/admin/message/{id}/status", gate(http.HandlerFunc(adminHandler.UpdateStatus)))

	// Admin panel pages
	mux.HandleFunc("GET /admin", LoginPage)
	mux.HandleFunc("GET /admin/dashboard", DashboardPage)
	mux.Handle("GET /public/", PublicAssets())

	mux.HandleFunc("/", NotFound)

	return RequestLogger(Recover(SecurityHeaders(rc.Production)(h.CORS(mux))))
}
