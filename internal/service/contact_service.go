package service

import (
	"context"

	"github.com/skopeo/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stores a new contact message. The returned record carries the
	// generated id, status "new" and timestamps.
	Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error)

	// List returns every contact message, oldest first.
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// Get returns repository.ErrNotFound for an unknown id.
	Get(ctx context.Context, id string) (*model.ContactMessage, error)

	// UpdateStatus sets the status of a message. Any status may follow any
	// other. Returns repository.ErrNotFound for an unknown id.
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error)
}
