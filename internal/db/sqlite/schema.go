package sqlite

import (
	"context"
)

// DefaultCategories mirrors the categories seeded by the Postgres migrations.
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

func (s *Store) initSchema(ctx context.Context) error {
	// questions.category has no FK so orphaned references are served as-is,
	// matching the Postgres schema.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category INTEGER NOT NULL,
			difficulty INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return s.seedCategories(ctx)
}

func (s *Store) seedCategories(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range DefaultCategories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (type) VALUES (?)`, name); err != nil {
			return err
		}
	}
	return tx.Commit()
}
