package handler

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// PublicAssets serves the dashboard CSS/JS under /public/.
func PublicAssets() http.Handler {
	return http.StripPrefix("/public/", http.FileServerFS(staticFS()))
}

// LoginPage handles GET /admin.
func LoginPage(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, "login.html")
}

// DashboardPage handles GET /admin/dashboard. The page itself is public; its
// API calls go through the session gate.
func DashboardPage(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, "dashboard.html")
}

func servePage(w http.ResponseWriter, r *http.Request, name string) {
	body, err := fs.ReadFile(staticFS(), name)
	if err != nil {
		slog.Error("read static page failed", "page", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Message: "Something went wrong!"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(body)
}
