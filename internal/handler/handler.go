package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/nexora/backend/internal/repository"
)

// Handler serves the infrastructure endpoints and the CORS policy.
type Handler struct {
	db             repository.DB
	allowedOrigins map[string]struct{}
}

// New creates a Handler. allowedOrigins is the fixed browser allow-list.
func New(db repository.DB, allowedOrigins []string) *Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}
	return &Handler{db: db, allowedOrigins: origins}
}

// CORS admits requests without an Origin header, same-host requests, and
// requests from the allow-list. Credentials are enabled for admitted
// origins; anything else is refused with 403.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !h.originAllowed(origin, r.Host) {
			writeJSON(w, http.StatusForbidden, apiResponse{Message: "Not allowed by CORS"})
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) originAllowed(origin, host string) bool {
	if _, ok := h.allowedOrigins[strings.TrimRight(origin, "/")]; ok {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host != "" && u.Host == host
}
