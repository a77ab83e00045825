package blogstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/models"
)

// blogsFileName is the JSON document holding all posts inside the data
// directory.
const blogsFileName = "blogs.json"

// FileStore persists posts as a single pretty-printed JSON array on disk.
//
// Every write goes through a read-modify-write cycle; a mutex serializes
// those cycles so concurrent creates cannot clobber each other. The site
// this replaces lost records under exactly that race, so the lock here is
// a deliberate, documented behavior change.
type FileStore struct {
	path string

	mu sync.Mutex
}

// NewFileStore creates the data directory if needed and returns a store
// writing to <dir>/blogs.json.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, blogsFileName)}, nil
}

// Create appends a new post with a millisecond-timestamp ID.
func (s *FileStore) Create(_ context.Context, post NewPost) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.read()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := models.BlogPost{
		ID:          s.nextID(posts, now),
		Title:       post.Title,
		Content:     post.Content,
		Excerpt:     post.Excerpt,
		Author:      post.Author,
		Tags:        post.Tags,
		PublishedAt: now,
		UpdatedAt:   now,
	}
	if created.Tags == nil {
		created.Tags = []string{}
	}

	posts = append(posts, created)
	if err := s.write(posts); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get returns the post with the given ID.
func (s *FileStore) Get(_ context.Context, id string) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, ErrNotFound
}

// List returns all posts, newest first.
func (s *FileStore) List(_ context.Context) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, nil
}

// Update overwrites the supplied fields of an existing post and bumps
// UpdatedAt. PublishedAt and ID are left untouched.
func (s *FileStore) Update(_ context.Context, id string, upd Update) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID != id {
			continue
		}
		apply(&posts[i], upd)
		posts[i].UpdatedAt = time.Now().UTC()
		if err := s.write(posts); err != nil {
			return nil, err
		}
		updated := posts[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

// Delete removes the post with the given ID.
func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.read()
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == id {
			posts = append(posts[:i], posts[i+1:]...)
			return s.write(posts)
		}
	}
	return ErrNotFound
}

// Close is a no-op; the file is opened per operation.
func (s *FileStore) Close(context.Context) error { return nil }

// read loads the full post list from disk. A missing file is an empty
// store, not an error.
func (s *FileStore) read() ([]models.BlogPost, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.BlogPost{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blogs file: %w", err)
	}

	var posts []models.BlogPost
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parse blogs file: %w", err)
	}
	return posts, nil
}

// write atomically replaces the posts file: marshal to a temp file in the
// same directory, then rename over the original.
func (s *FileStore) write(posts []models.BlogPost) error {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal blogs: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), blogsFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp blogs file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write blogs file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close blogs file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace blogs file: %w", err)
	}
	return nil
}

// nextID produces a unique millisecond-timestamp ID. Two creates landing
// in the same millisecond bump the counter until the ID is free; the
// caller holds the mutex so the scan is race-free.
func (s *FileStore) nextID(posts []models.BlogPost, now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		taken := false
		for i := range posts {
			if posts[i].ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		ms++
	}
}
