package blogstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/models"
)

// PostgresStore persists posts in the blogs table. IDs are the serial
// primary key rendered as decimal strings so the Store contract stays
// backend-agnostic. Tags live in a text column as a JSON-encoded array,
// mirroring the site's original relational schema; that encoding never
// leaves this file.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an already-connected database pool. The caller
// is expected to have run migrations first.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const blogColumns = "id, title, content, excerpt, author, tags, published_at, updated_at"

// Create inserts a post and returns it with the database-assigned ID and
// timestamps.
func (s *PostgresStore) Create(ctx context.Context, post NewPost) (*models.BlogPost, error) {
	tags, err := encodeTags(post.Tags)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO blogs (title, content, excerpt, author, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+blogColumns,
		post.Title, post.Content, nullable(post.Excerpt), nullable(post.Author), tags,
	)
	created, err := scanBlog(row)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// Get returns a single post by ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, numID)
	post, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return post, nil
}

// List returns all posts ordered by published_at descending.
func (s *PostgresStore) List(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs ORDER BY published_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		post, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// Update applies the supplied fields inside a transaction: read the
// current row, merge, write everything back. published_at is never part
// of the UPDATE.
func (s *PostgresStore) Update(ctx context.Context, id string, upd Update) (*models.BlogPost, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1 FOR UPDATE`, numID)
	current, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	apply(current, upd)
	tags, err := encodeTags(current.Tags)
	if err != nil {
		return nil, err
	}

	row = tx.QueryRowContext(ctx, `
		UPDATE blogs
		SET title = $1, content = $2, excerpt = $3, author = $4, tags = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+blogColumns,
		current.Title, current.Content, nullable(current.Excerpt), nullable(current.Author), tags, numID,
	)
	updated, err := scanBlog(row)
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return updated, nil
}

// Delete removes a post, reporting ErrNotFound when no row matched.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	numID, err := parseID(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, numID)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close(context.Context) error {
	return s.db.Close()
}

// scanTarget covers both *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanBlog(row scanTarget) (*models.BlogPost, error) {
	var (
		post        models.BlogPost
		numID       int64
		excerpt     sql.NullString
		author      sql.NullString
		tags        sql.NullString
		publishedAt time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&numID, &post.Title, &post.Content, &excerpt, &author, &tags, &publishedAt, &updatedAt); err != nil {
		return nil, err
	}

	post.ID = strconv.FormatInt(numID, 10)
	post.Excerpt = excerpt.String
	post.Author = author.String
	post.PublishedAt = publishedAt
	post.UpdatedAt = updatedAt

	post.Tags = []string{}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &post.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &post, nil
}

// encodeTags serializes tags for the text column. Nil encodes as an empty
// array so round-trips always yield a slice.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// nullable maps "" to SQL NULL for optional text columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
