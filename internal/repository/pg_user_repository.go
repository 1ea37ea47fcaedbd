package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skopeo/backend/internal/model"
)

const uniqueViolation = "23505"

const userSelectCols = `id, username, password`

func scanUser(scan func(...any) error) (*model.User, error) {
	var u model.User
	if err := scan(&u.ID, &u.Username, &u.Password); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a users row; the id is generated by the database.
func (s *PgStore) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2)
		 RETURNING `+userSelectCols,
		in.Username, in.Password,
	)
	u, err := scanUser(row.Scan)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUser looks a user up by id.
func (s *PgStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.findUser(ctx, `SELECT `+userSelectCols+` FROM users WHERE id = $1`, id)
}

// GetUserByUsername looks a user up by its unique username.
func (s *PgStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.findUser(ctx, `SELECT `+userSelectCols+` FROM users WHERE username = $1`, username)
}

func (s *PgStore) findUser(ctx context.Context, query string, arg string) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, query, arg).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
