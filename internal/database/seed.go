package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed inserts a welcome post when the blogs table is empty, so a fresh
// development database has something to render. No-op otherwise.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count); err != nil {
		return fmt.Errorf("seed check blogs: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO blogs (title, content, excerpt, author, tags)
		VALUES ($1, $2, $3, $4, $5)
	`,
		"Welcome to the GPH Blog",
		"## Hello\n\nThis is the first post. Edit or delete it from the admin panel.",
		"A first post to confirm the blog is up.",
		"admin@gph.local",
		`["welcome"]`,
	)
	if err != nil {
		return fmt.Errorf("seed insert welcome post: %w", err)
	}

	slog.Info("database seeded with welcome post")
	return nil
}
