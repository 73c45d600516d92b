package models

import (
	"database/sql"
	"time"
)

// User represents a registered account.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never sent to clients
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// RefreshToken is the single currently-valid refresh token for the
	// user. Issuing a new one on login overwrites it, which invalidates
	// the previous token.
	RefreshToken sql.NullString `json:"-" db:"refresh_token"`
}

// Summary returns the public view of a user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// UserSummary is the public user shape embedded in API responses.
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Post represents a blog post owned by exactly one user.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Author is populated on reads via a join; it is not written back.
	Author *UserSummary `json:"author,omitempty"`
}

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         UserSummary `json:"user"`
}
