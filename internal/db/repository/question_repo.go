package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
)

const questionColumns = `id, question, answer, category, difficulty`

// QuestionRepository holds the hand-written SQL for the questions table.
type QuestionRepository struct {
	db querier
}

func NewQuestionRepository(db querier) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListAll returns every question ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]catalog.Question, error) {
	return r.list(ctx, "list questions",
		`SELECT `+questionColumns+` FROM questions ORDER BY id`)
}

// FindByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) FindByCategory(ctx context.Context, categoryID int64) ([]catalog.Question, error) {
	return r.list(ctx, "find questions by category",
		`SELECT `+questionColumns+` FROM questions WHERE category = $1 ORDER BY id`, categoryID)
}

// Search matches term as a case-sensitive substring. strpos keeps % and _
// literal, unlike LIKE.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]catalog.Question, error) {
	return r.list(ctx, "search questions",
		`SELECT `+questionColumns+` FROM questions WHERE strpos(question, $1) > 0 ORDER BY id`, term)
}

// Insert stores q and returns it with the generated id.
func (r *QuestionRepository) Insert(ctx context.Context, q catalog.Question) (catalog.Question, error) {
	if err := q.Validate(); err != nil {
		return catalog.Question{}, err
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, q.Text, q.Answer, q.CategoryID, q.Difficulty).Scan(&q.ID)
	if err != nil {
		return catalog.Question{}, classify("insert question", err)
	}
	return q, nil
}

// DeleteByID removes one question; a missing id is catalog.ErrNotFound.
func (r *QuestionRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return classify("delete question", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) list(ctx context.Context, op, sql string, args ...any) ([]catalog.Question, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	qs := []catalog.Question{}
	for rows.Next() {
		var q catalog.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Answer, &q.CategoryID, &q.Difficulty); err != nil {
			return nil, classify(op, err)
		}
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return qs, nil
}
