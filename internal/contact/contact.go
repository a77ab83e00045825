// Package contact persists contact-form submissions to a JSON file in the
// data directory. Submissions are append-only; there is no admin UI for
// them, they are read straight off the disk.
package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// submissionsFileName is the JSON document inside the data directory.
const submissionsFileName = "contact-submissions.json"

// Submission is one contact-form entry. ID and Timestamp are assigned
// server-side.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Subject   string    `json:"subject,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Store appends submissions to the JSON file, serializing writes with a
// mutex like the blog file backend.
type Store struct {
	path string

	mu sync.Mutex
}

// NewStore creates the data directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, submissionsFileName)}, nil
}

// Add assigns an ID and timestamp, then appends the submission.
func (s *Store) Add(_ context.Context, sub Submission) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.read()
	if err != nil {
		return nil, err
	}

	sub.ID = uuid.NewString()
	sub.Timestamp = time.Now().UTC()
	subs = append(subs, sub)

	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal submissions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write submissions file: %w", err)
	}
	return &sub, nil
}

// List returns every stored submission in insertion order.
func (s *Store) List(_ context.Context) ([]Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) read() ([]Submission, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read submissions file: %w", err)
	}

	var subs []Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("parse submissions file: %w", err)
	}
	return subs, nil
}
