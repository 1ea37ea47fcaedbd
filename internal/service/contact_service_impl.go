package service

import (
	"context"

	"github.com/skopeo/backend/internal/logging"
	"github.com/skopeo/backend/internal/model"
	"github.com/skopeo/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

func (s *contactServiceImpl) Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	msg, err := s.repo.CreateContactMessage(ctx, in)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("contact message created", "contact_id", msg.ID)
	return msg, nil
}

func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	messages, err := s.repo.GetContactMessages(ctx)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	return messages, nil
}

func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.ContactMessage, error) {
	return s.repo.GetContactMessage(ctx, id)
}

func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error) {
	msg, err := s.repo.UpdateContactMessageStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("contact message status updated", "contact_id", id, "status", status)
	return msg, nil
}
