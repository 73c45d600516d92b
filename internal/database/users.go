package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/blogserver-io/blogserver/internal/models"
)

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = errors.New("not found")

// CreateUser inserts a new user and returns the stored row.
func (s *Store) CreateUser(name, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()

	var id int64
	if s.dbType == "postgres" {
		err := s.db.QueryRow(
			"INSERT INTO users (name, email, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id",
			name, email, passwordHash, now, now,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
	} else {
		result, err := s.db.Exec(
			"INSERT INTO users (name, email, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			name, email, passwordHash, now, now,
		)
		if err != nil {
			return nil, err
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, err
		}
	}

	return s.GetUserByID(id)
}

// GetUserByID retrieves a user by their ID.
func (s *Store) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT id, name, email, password, refresh_token, created_at, updated_at FROM users WHERE id = ?"
	if s.dbType == "postgres" {
		query = "SELECT id, name, email, password, refresh_token, created_at, updated_at FROM users WHERE id = $1"
	}

	user := &models.User{}
	err := s.db.QueryRow(query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.RefreshToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT id, name, email, password, refresh_token, created_at, updated_at FROM users WHERE email = ?"
	if s.dbType == "postgres" {
		query = "SELECT id, name, email, password, refresh_token, created_at, updated_at FROM users WHERE email = $1"
	}

	user := &models.User{}
	err := s.db.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.RefreshToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EmailExists reports whether a user with the given email is registered.
func (s *Store) EmailExists(email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)"
	if s.dbType == "postgres" {
		query = "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)"
	}

	var exists bool
	if err := s.db.QueryRow(query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateRefreshToken overwrites the user's stored refresh token. Writing a
// new token implicitly invalidates whichever one was stored before.
func (s *Store) UpdateRefreshToken(userID int64, refreshToken string) error {
	query := "UPDATE users SET refresh_token = ?, updated_at = ? WHERE id = ?"
	if s.dbType == "postgres" {
		query = "UPDATE users SET refresh_token = $1, updated_at = $2 WHERE id = $3"
	}

	result, err := s.db.Exec(query, refreshToken, time.Now().UTC(), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a user. Owned posts go with it via the FK cascade.
func (s *Store) DeleteUser(id int64) error {
	query := "DELETE FROM users WHERE id = ?"
	if s.dbType == "postgres" {
		query = "DELETE FROM users WHERE id = $1"
	}

	result, err := s.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
