package service

import (
	"context"
	"log/slog"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
)

// messageServiceImpl is the production implementation of MessageService.
type messageServiceImpl struct {
	repo repository.MessageRepository
}

// NewMessageService creates a MessageService backed by the given repository.
func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageServiceImpl{repo: repo}
}

// Submit forces the status to pending, whatever the caller set, and persists
// the message.
func (s *messageServiceImpl) Submit(ctx context.Context, msg *model.Message) error {
	msg.Status = model.StatusPending
	if err := s.repo.Create(ctx, msg); err != nil {
		return err
	}
	slog.Info("contact message stored", "message_id", msg.ID)
	return nil
}

func (s *messageServiceImpl) List(ctx context.Context, opts model.MessageListOptions) (*model.MessagePage, error) {
	page, err := s.repo.List(ctx, opts.Normalized())
	if err != nil {
		return nil, err
	}
	if page.Messages == nil {
		page.Messages = []*model.Message{}
	}
	return page, nil
}

func (s *messageServiceImpl) Delete(ctx context.Context, id string) (*model.Message, error) {
	msg, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slog.Info("contact message deleted", "message_id", msg.ID)
	return msg, nil
}

func (s *messageServiceImpl) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (*model.Message, error) {
	if !status.Valid() {
		return nil, model.ValidationErrors{{Field: "status", Message: "Status must be one of pending, accepted, rejected"}}
	}
	msg, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	slog.Info("contact message status updated", "message_id", msg.ID, "status", msg.Status)
	return msg, nil
}
