package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
)

// Store is an embedded catalog backend for local development and tests.
type Store struct {
	db *sql.DB
}

var _ catalog.Store = (*Store)(nil)

// Open creates (or reuses) the database at path, applies the schema and seeds
// the default categories when the table is empty.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "trivia.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return classify(s.db.PingContext(ctx))
}

func (s *Store) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY type, id`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	cats := []catalog.Category{}
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, classify(rows.Err())
}

func (s *Store) ListAll(ctx context.Context) ([]catalog.Question, error) {
	return s.queryQuestions(ctx, `SELECT id, question, answer, category, difficulty FROM questions ORDER BY id`)
}

func (s *Store) FindByCategory(ctx context.Context, categoryID int64) ([]catalog.Question, error) {
	return s.queryQuestions(ctx,
		`SELECT id, question, answer, category, difficulty FROM questions WHERE category = ? ORDER BY id`,
		categoryID)
}

// Search uses instr, which is case-sensitive and treats % and _ literally.
func (s *Store) Search(ctx context.Context, term string) ([]catalog.Question, error) {
	return s.queryQuestions(ctx,
		`SELECT id, question, answer, category, difficulty FROM questions WHERE instr(question, ?) > 0 ORDER BY id`,
		term)
}

func (s *Store) Insert(ctx context.Context, q catalog.Question) (catalog.Question, error) {
	if err := q.Validate(); err != nil {
		return catalog.Question{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
		q.Text, q.Answer, q.CategoryID, q.Difficulty)
	if err != nil {
		return catalog.Question{}, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return catalog.Question{}, err
	}
	q.ID = id
	return q, nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) queryQuestions(ctx context.Context, query string, args ...any) ([]catalog.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	qs := []catalog.Question{}
	for rows.Next() {
		var q catalog.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Answer, &q.CategoryID, &q.Difficulty); err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, classify(rows.Err())
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	// database/sql does not export its closed-pool error.
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %v", catalog.ErrStoreUnavailable, err)
	}
	return err
}
