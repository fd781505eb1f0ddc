package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
)

const maxBodyBytes = 1 << 20

// apiResponse is the envelope shared by every JSON endpoint.
type apiResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    any                    `json:"data,omitempty"`
	Errors  model.ValidationErrors `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response failed", "error", err)
	}
}

func writeValidationFailed(w http.ResponseWriter, errs model.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, apiResponse{
		Message: "Validation failed",
		Errors:  errs,
	})
}

// writeStoreError maps a service error onto the response taxonomy:
// validation → 400, not found → 404, anything else → 500 with fallback as
// the message.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verrs model.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeValidationFailed(w, verrs)
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, apiResponse{Message: "Message not found"})
	default:
		slog.Error(fallback, "error", err, "method", r.Method, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Message: fallback})
	}
}

// decodeBody reads a JSON or form-encoded request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("parse form: %w", err)
		}
		fields := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
		raw, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dst)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, apiResponse{Message: "Route not found"})
}
