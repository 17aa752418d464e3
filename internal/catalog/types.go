package catalog

import (
	"context"
	"strings"
)

// AllCategories is the quiz scope that draws from every category.
const AllCategories Scope = 0

// DefaultPageSize is the number of questions per browse page.
const DefaultPageSize = 10

// Scope bounds the quiz candidate pool: AllCategories or a category id.
type Scope int64

// Category is read-mostly reference data seeded at setup time.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"type"`
}

// Question is a single trivia entry. CategoryID may reference a category
// that no longer exists; such questions are served as-is.
type Question struct {
	ID         int64  `json:"id"`
	Text       string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Validate checks that every field a new question needs is present.
func (q Question) Validate() error {
	switch {
	case strings.TrimSpace(q.Text) == "":
		return &ValidationError{Field: "question", Message: "question is required"}
	case strings.TrimSpace(q.Answer) == "":
		return &ValidationError{Field: "answer", Message: "answer is required"}
	case q.CategoryID == 0:
		return &ValidationError{Field: "category", Message: "category is required"}
	case q.Difficulty == 0:
		return &ValidationError{Field: "difficulty", Message: "difficulty is required"}
	}
	return nil
}

// QuestionPage is one browse page plus the totals the listing view shows.
type QuestionPage struct {
	Questions      []Question
	PageNumber     int
	PageSize       int
	TotalQuestions int
	Categories     []Category
}

// CategoryQuestions is the result of a category filter.
type CategoryQuestions struct {
	CategoryID int64
	Questions  []Question
}

// CategoryStore reads category reference data.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

// QuestionStore is the narrow data-access surface the engine needs.
// All list methods return questions ordered by id ascending.
type QuestionStore interface {
	ListAll(ctx context.Context) ([]Question, error)
	FindByCategory(ctx context.Context, categoryID int64) ([]Question, error)
	Search(ctx context.Context, term string) ([]Question, error)
	Insert(ctx context.Context, q Question) (Question, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Store is implemented by the Postgres and SQLite backends.
type Store interface {
	CategoryStore
	QuestionStore
}
