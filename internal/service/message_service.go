package service

import (
	"context"

	"github.com/nexora/backend/internal/model"
)

// MessageService defines the business logic for contact messages.
type MessageService interface {
	// Submit stores a new contact message as pending. msg.ID and the
	// timestamps are populated by the implementation.
	Submit(ctx context.Context, msg *model.Message) error

	// List returns one page of messages according to the given options.
	List(ctx context.Context, opts model.MessageListOptions) (*model.MessagePage, error)

	// Delete hard-deletes a message. Returns repository.ErrNotFound when absent.
	Delete(ctx context.Context, id string) (*model.Message, error)

	// UpdateStatus moves a message to a new moderation status.
	UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (*model.Message, error)
}
