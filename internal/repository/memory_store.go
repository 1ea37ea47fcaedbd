package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skopeo/backend/internal/model"
)

// MemoryStore is the in-process Store used when no database is configured.
// Data does not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	now      func() time.Time
	seq      uint64
	contacts map[string]memoryContact
	users    map[string]*model.User
}

type memoryContact struct {
	msg *model.ContactMessage
	seq uint64 // insertion order, breaks CreatedAt ties
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		now:      time.Now,
		contacts: make(map[string]memoryContact),
		users:    make(map[string]*model.User),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Kind() BackendKind { return BackendMemory }

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() {}

// CreateContactMessage stores a new message built by model.NewContactMessage.
func (s *MemoryStore) CreateContactMessage(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, exists := s.contacts[id]; !exists {
			break
		}
		id = uuid.NewString()
	}
	msg := model.NewContactMessage(id, in, s.now())
	s.seq++
	s.contacts[id] = memoryContact{msg: msg, seq: s.seq}
	return copyContact(msg), nil
}

// GetContactMessages returns all messages sorted by CreatedAt ascending.
func (s *MemoryStore) GetContactMessages(ctx context.Context) ([]*model.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	entries := make([]memoryContact, 0, len(s.contacts))
	for _, c := range s.contacts {
		entries = append(entries, c)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].msg.CreatedAt, entries[j].msg.CreatedAt
		if a.Equal(b) {
			return entries[i].seq < entries[j].seq
		}
		return a.Before(b)
	})

	messages := make([]*model.ContactMessage, len(entries))
	for i, c := range entries {
		messages[i] = copyContact(c.msg)
	}
	return messages, nil
}

func (s *MemoryStore) GetContactMessage(ctx context.Context, id string) (*model.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyContact(c.msg), nil
}

// UpdateContactMessageStatus replaces the stored record with one carrying the
// new status and a refreshed UpdatedAt.
func (s *MemoryStore) UpdateContactMessageStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.msg = c.msg.WithStatus(status, s.now())
	s.contacts[id] = c
	return copyContact(c.msg), nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == in.Username {
			return nil, ErrUsernameTaken
		}
	}
	u := &model.User{ID: uuid.NewString(), Username: in.Username, Password: in.Password}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func copyContact(m *model.ContactMessage) *model.ContactMessage {
	cp := *m
	return &cp
}
