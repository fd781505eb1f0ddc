package handler

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nexora/backend/internal/metrics"
	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/service"
)

// ContactHandler handles public contact form submissions.
type ContactHandler struct {
	messageService service.MessageService
	validate       *validator.Validate
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(messageService service.MessageService) *ContactHandler {
	return &ContactHandler{messageService: messageService, validate: newValidator()}
}

// submitRequest is the expected body for POST /api/contact/post/message.
// Any client-supplied status is ignored.
type submitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

var submitMessages = map[string]string{
	"name":    "Name must be between 2 and 100 characters",
	"email":   "Please provide a valid email address",
	"subject": "Subject must be between 5 and 200 characters",
	"message": "Message must be between 10 and 2000 characters",
}

func (req *submitRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
}

type submitData struct {
	ID     string              `json:"id"`
	Status model.MessageStatus `json:"status"`
}

// Submit handles POST /api/contact/post/message.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeBody(w, r, &req); err != nil {
		metrics.MessagesSubmitted.WithLabelValues(metrics.ResultInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Invalid request body"})
		return
	}
	req.normalize()

	if errs := validateRequest(h.validate, &req, submitMessages); len(errs) > 0 {
		metrics.MessagesSubmitted.WithLabelValues(metrics.ResultInvalid).Inc()
		writeValidationFailed(w, errs)
		return
	}

	msg := &model.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.messageService.Submit(r.Context(), msg); err != nil {
		metrics.MessagesSubmitted.WithLabelValues(metrics.ResultError).Inc()
		writeStoreError(w, r, err, "Internal server error. Please try again later.")
		return
	}

	metrics.MessagesSubmitted.WithLabelValues(metrics.ResultSuccess).Inc()
	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Message sent successfully",
		Data:    submitData{ID: msg.ID, Status: msg.Status},
	})
}
