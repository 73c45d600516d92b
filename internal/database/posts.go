package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/blogserver-io/blogserver/internal/models"
)

const postSelect = `SELECT p.id, p.title, p.content, p.author_id, p.created_at,
	u.id, u.email, u.name
	FROM posts p JOIN users u ON u.id = p.author_id`

// CreatePost inserts a new post for the given author and returns the
// stored row with the author populated.
func (s *Store) CreatePost(title, content string, authorID int64) (*models.Post, error) {
	now := time.Now().UTC()

	var id int64
	if s.dbType == "postgres" {
		err := s.db.QueryRow(
			"INSERT INTO posts (title, content, author_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
			title, content, authorID, now,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
	} else {
		result, err := s.db.Exec(
			"INSERT INTO posts (title, content, author_id, created_at) VALUES (?, ?, ?, ?)",
			title, content, authorID, now,
		)
		if err != nil {
			return nil, err
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, err
		}
	}

	return s.GetPostByID(id)
}

// GetPostByID retrieves a post with its author. A missing id is not an
// error: the post is simply absent and (nil, nil) is returned.
func (s *Store) GetPostByID(id int64) (*models.Post, error) {
	query := postSelect + " WHERE p.id = ?"
	if s.dbType == "postgres" {
		query = postSelect + " WHERE p.id = $1"
	}

	post, err := scanPost(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetAllPosts returns every post with its author, newest first.
func (s *Store) GetAllPosts() ([]*models.Post, error) {
	rows, err := s.db.Query(postSelect + " ORDER BY p.created_at DESC, p.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// GetPostsByAuthor returns the posts owned by the given user, newest first.
func (s *Store) GetPostsByAuthor(authorID int64) ([]*models.Post, error) {
	query := postSelect + " WHERE p.author_id = ? ORDER BY p.created_at DESC, p.id DESC"
	if s.dbType == "postgres" {
		query = postSelect + " WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.id DESC"
	}

	rows, err := s.db.Query(query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// DeletePost removes a post by id.
func (s *Store) DeletePost(id int64) error {
	query := "DELETE FROM posts WHERE id = ?"
	if s.dbType == "postgres" {
		query = "DELETE FROM posts WHERE id = $1"
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{Author: &models.UserSummary{}}
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt,
		&post.Author.ID, &post.Author.Email, &post.Author.Name,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func collectPosts(rows *sql.Rows) ([]*models.Post, error) {
	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}
