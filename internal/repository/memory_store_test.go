package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/skopeo/backend/internal/model"
)

// TestMemoryStore_ReturnsCopies verifies callers cannot mutate stored records.
func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.CreateContactMessage(ctx, model.ContactInput{Message: "original"})
	if err != nil {
		t.Fatalf("CreateContactMessage failed: %v", err)
	}
	created.Message = "tampered"
	created.Status = "archived"

	got, err := s.GetContactMessage(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetContactMessage failed: %v", err)
	}
	if got.Message != "original" || got.Status != model.ContactStatusNew {
		t.Errorf("stored record was mutated: %+v", got)
	}

	list, _ := s.GetContactMessages(ctx)
	list[0].Message = "tampered again"
	got, _ = s.GetContactMessage(ctx, created.ID)
	if got.Message != "original" {
		t.Errorf("stored record was mutated through list: %q", got.Message)
	}
}

// TestMemoryStore_ListTiesKeepInsertionOrder verifies equal timestamps sort stably.
func TestMemoryStore_ListTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithClock(func() time.Time { return fixed }))

	var ids []string
	for i := 0; i < 10; i++ {
		msg, err := s.CreateContactMessage(ctx, model.ContactInput{})
		if err != nil {
			t.Fatalf("CreateContactMessage failed: %v", err)
		}
		ids = append(ids, msg.ID)
	}

	list, err := s.GetContactMessages(ctx)
	if err != nil {
		t.Fatalf("GetContactMessages failed: %v", err)
	}
	for i := range ids {
		if list[i].ID != ids[i] {
			t.Fatalf("position %d: expected %s, got %s", i, ids[i], list[i].ID)
		}
	}
}

// TestMemoryStore_ConcurrentAccess exercises the mutex under -race.
func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg, err := s.CreateContactMessage(ctx, model.ContactInput{Message: "hi"})
			if err != nil {
				t.Errorf("CreateContactMessage failed: %v", err)
				return
			}
			if _, err := s.UpdateContactMessageStatus(ctx, msg.ID, model.ContactStatusContacted); err != nil {
				t.Errorf("UpdateContactMessageStatus failed: %v", err)
			}
			if _, err := s.GetContactMessages(ctx); err != nil {
				t.Errorf("GetContactMessages failed: %v", err)
			}
		}()
	}
	wg.Wait()

	list, _ := s.GetContactMessages(ctx)
	if len(list) != 20 {
		t.Errorf("expected 20 messages, got %d", len(list))
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryStore()
	if _, err := s.CreateContactMessage(ctx, model.ContactInput{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled from Ping, got %v", err)
	}
}

func TestOpen_NoDatabaseURLUsesMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(context.Background(), "", logger)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if store.Kind() != BackendMemory {
		t.Errorf("expected memory backend, got %q", store.Kind())
	}
}

func TestNewPgStore_MissingConnString(t *testing.T) {
	_, err := NewPgStore(context.Background(), "")
	if !errors.Is(err, ErrMissingConnString) {
		t.Errorf("expected ErrMissingConnString, got %v", err)
	}
}
