package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/skopeo/backend/internal/model"
)

const contactSelectCols = `id, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(email, ''),
	COALESCE(company, ''), COALESCE(role, ''), COALESCE(message, ''),
	COALESCE(ip_address, ''), COALESCE(user_agent, ''), status, created_at, updated_at`

func scanContact(scan func(...any) error) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Company, &m.Role, &m.Message,
		&m.IPAddress, &m.UserAgent, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return &m, nil
}

// CreateContactMessage inserts a contact_messages row. Defaults come from
// model.NewContactMessage so the row matches what the memory store would hold.
func (s *PgStore) CreateContactMessage(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	msg := model.NewContactMessage(uuid.NewString(), in, s.now())
	row := s.pool.QueryRow(ctx,
		`INSERT INTO contact_messages
		   (id, first_name, last_name, email, company, role, message, ip_address, user_agent, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+contactSelectCols,
		msg.ID, msg.FirstName, msg.LastName, msg.Email, msg.Company, msg.Role, msg.Message,
		msg.IPAddress, msg.UserAgent, msg.Status, msg.CreatedAt, msg.UpdatedAt,
	)
	created, err := scanContact(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return created, nil
}

// GetContactMessages returns every message ordered by created_at ascending.
func (s *PgStore) GetContactMessages(ctx context.Context) ([]*model.ContactMessage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+contactSelectCols+` FROM contact_messages ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []*model.ContactMessage{}
	for rows.Next() {
		m, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *PgStore) GetContactMessage(ctx context.Context, id string) (*model.ContactMessage, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+contactSelectCols+` FROM contact_messages WHERE id = $1`, id)
	m, err := scanContact(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact message: %w", err)
	}
	return m, nil
}

// UpdateContactMessageStatus sets status and updated_at in a single statement.
func (s *PgStore) UpdateContactMessageStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE contact_messages SET status = $2, updated_at = $3
		 WHERE id = $1
		 RETURNING `+contactSelectCols,
		id, status, model.Timestamp(s.now()),
	)
	m, err := scanContact(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update contact message status: %w", err)
	}
	return m, nil
}
