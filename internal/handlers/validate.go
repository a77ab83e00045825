package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for blog post fields.
const (
	maxTitleLen   = 300
	maxContentLen = 100_000
	maxExcerptLen = 1_000
	maxTagLen     = 100
)

// validateNewPost checks the fields of a create request and returns the
// first problem found, or "" when the input is valid. Content is never
// parsed or sanitized here; markup is interpreted only at render time.
func validateNewPost(title, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)"
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required"
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)"
	}
	return ""
}

// validateUpdate checks only the fields present in a partial update.
func validateUpdate(title, content, excerpt *string) string {
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return "Title cannot be empty"
		}
		if utf8.RuneCountInString(*title) > maxTitleLen {
			return "Title is too long (max 300 characters)"
		}
	}
	if content != nil {
		if strings.TrimSpace(*content) == "" {
			return "Content cannot be empty"
		}
		if utf8.RuneCountInString(*content) > maxContentLen {
			return "Content is too long (max 100,000 characters)"
		}
	}
	if excerpt != nil && utf8.RuneCountInString(*excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)"
	}
	return ""
}

// validateTags rejects oversized tag entries.
func validateTags(tags []string) string {
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > maxTagLen {
			return "Tag is too long (max 100 characters)"
		}
	}
	return ""
}
