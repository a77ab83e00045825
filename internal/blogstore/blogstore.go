// Package blogstore defines the storage contract for blog posts and ships
// three interchangeable backends: a flat JSON file, a MongoDB collection,
// and a PostgreSQL table. The backend is picked once at startup; handlers
// only ever see the Store interface.
//
// Tags cross this boundary as an ordered []string in both directions.
// Backends that serialize tags internally (PostgreSQL stores them as a
// JSON string column) keep that representation to themselves.
package blogstore

import (
	"context"
	"errors"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/models"
)

// ErrNotFound is returned by Get, Update and Delete when no post exists
// with the given ID. Deleting the same ID twice yields ErrNotFound on the
// second call; that is the contract, not an error state.
var ErrNotFound = errors.New("blog post not found")

// NewPost carries the fields of a post about to be created. The backend
// assigns the ID and PublishedAt; Author comes from the session, never
// from the client.
type NewPost struct {
	Title   string
	Content string
	Excerpt string
	Author  string
	Tags    []string
}

// Update carries a partial update. Nil pointer fields are left unchanged.
// A nil Tags slice means "do not touch tags"; an empty non-nil slice
// clears them. Author is recorded on every update from the session.
type Update struct {
	Title   *string
	Content *string
	Excerpt *string
	Tags    []string
	Author  string
}

// Store is the persistence contract shared by all backends.
//
// Any I/O-level failure (disk, network, driver) surfaces as a wrapped
// error; callers never retry, they map it to a 5xx response. List on an
// empty store returns an empty slice, not an error.
type Store interface {
	// Create persists a new post, assigning its ID and PublishedAt.
	Create(ctx context.Context, post NewPost) (*models.BlogPost, error)

	// Get returns a single post by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.BlogPost, error)

	// List returns all posts ordered by PublishedAt descending.
	List(ctx context.Context) ([]models.BlogPost, error)

	// Update applies the supplied fields and sets UpdatedAt. PublishedAt
	// and ID are never modified. Returns ErrNotFound for unknown IDs.
	Update(ctx context.Context, id string, upd Update) (*models.BlogPost, error)

	// Delete removes a post. Returns ErrNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources (connections, file handles).
	Close(ctx context.Context) error
}

// apply copies the supplied update fields onto an existing post and is
// shared by backends that resolve partial updates in memory.
func apply(post *models.BlogPost, upd Update) {
	if upd.Title != nil {
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.Excerpt != nil {
		post.Excerpt = *upd.Excerpt
	}
	if upd.Tags != nil {
		post.Tags = upd.Tags
	}
	if upd.Author != "" {
		post.Author = upd.Author
	}
}
