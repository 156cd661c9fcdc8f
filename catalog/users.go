package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

type (
	User struct {
		ID           string
		Username     string
		PasswordHash string
	}
)

func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `select id, username, password_hash from users where username = ?`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, UserNotFound{Ref: username}
	} else if err != nil {
		return User{}, fmt.Errorf("unable to load user %v, cause %w", username, err)
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `select id, username, password_hash from users where id = ?`,
		id).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, UserNotFound{Ref: id}
	} else if err != nil {
		return User{}, fmt.Errorf("unable to load user %v, cause %w", id, err)
	}
	return u, nil
}

// InsertUser adds a new user record. The unique index on username is the
// authoritative duplicate check, a constraint violation surfaces as
// UsernameTaken so concurrent registrations of the same name cannot both
// succeed.
func (s *Store) InsertUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `insert into users (id, username, password_hash) values (?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash)
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return UsernameTaken{Username: u.Username}
	} else if err != nil {
		return fmt.Errorf("unable to insert user %v, cause %w", u.Username, err)
	}
	return nil
}
