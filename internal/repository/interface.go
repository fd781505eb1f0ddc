package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexora/backend/internal/model"
)

// DB checks that the backing store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// MessageRepository defines the persistence interface for contact messages.
type MessageRepository interface {
	// Create validates msg, assigns its ID and timestamps, and stores it.
	// Invalid fields are reported as model.ValidationErrors.
	Create(ctx context.Context, msg *model.Message) error
	// List returns one page of messages, newest first, plus the total number
	// of messages matching the status filter.
	List(ctx context.Context, opts model.MessageListOptions) (*model.MessagePage, error)
	// DeleteByID removes a message and returns it, or ErrNotFound.
	DeleteByID(ctx context.Context, id string) (*model.Message, error)
	// UpdateStatus changes the status of a message and bumps UpdatedAt.
	UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (*model.Message, error)
}

// prepareCreate applies the shared insert rules so every implementation
// stores identical records.
func prepareCreate(msg *model.Message, now time.Time) error {
	msg.Normalize()
	if msg.Status == "" {
		msg.Status = model.StatusPending
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	msg.ID = uuid.NewString()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	return nil
}

// canonicalID returns the canonical form of a message ID. Malformed IDs
// cannot match any record.
func canonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func invalidStatus() error {
	return model.ValidationErrors{{Field: "status", Message: "Status must be one of pending, accepted, rejected"}}
}
