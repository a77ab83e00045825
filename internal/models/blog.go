// Package models defines the data types exchanged between the HTTP layer
// and the blog storage backends.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// BlogPost is a single published article. The ID and both timestamps are
// assigned server-side by the storage backend; clients never supply them.
// PublishedAt is set exactly once at creation and never changes afterwards.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TagList accepts tags in either of the two shapes the admin UI has sent
// over time: a JSON array of strings or a single comma-separated string.
// Both decode to the same normalized slice (trimmed, empties dropped,
// input order preserved).
type TagList []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TagList) UnmarshalJSON(data []byte) error {
	// Try the array form first.
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = NormalizeTags(list)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = NormalizeTags(strings.Split(raw, ","))
	return nil
}

// NormalizeTags trims every entry and drops the empty ones, preserving
// input order. Duplicates are kept; the model does not enforce uniqueness.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		normalized = append(normalized, tag)
	}
	return normalized
}
