package repository

import (
	"context"

	"github.com/skopeo/backend/internal/model"
)

// BackendKind names the persistence medium behind a Store.
type BackendKind string

const (
	BackendMemory   BackendKind = "memory"
	BackendPostgres BackendKind = "postgres"
)

// DB checks that the underlying store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository is the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// CreateContactMessage assigns an id, status "new" and timestamps.
	CreateContactMessage(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error)
	// GetContactMessages returns every message, oldest first.
	GetContactMessages(ctx context.Context) ([]*model.ContactMessage, error)
	// GetContactMessage returns ErrNotFound for an unknown id.
	GetContactMessage(ctx context.Context, id string) (*model.ContactMessage, error)
	// UpdateContactMessageStatus returns ErrNotFound for an unknown id.
	UpdateContactMessageStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error)
}

// UserRepository is the persistence interface for users.
type UserRepository interface {
	CreateUser(ctx context.Context, in model.UserInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// Store is the full capability set shared by every backend. Callers must not
// depend on which backend is active.
type Store interface {
	DB
	ContactRepository
	UserRepository
	Kind() BackendKind
	Close()
}
