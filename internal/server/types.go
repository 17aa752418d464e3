package server

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
)

// flexInt accepts a JSON number or a numeric string; the browse UI posts
// category and difficulty as strings.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", b)
	}
	*f = flexInt(n)
	return nil
}

type createQuestionRequest struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

func (r createQuestionRequest) toQuestion() catalog.Question {
	return catalog.Question{
		Text:       r.Question,
		Answer:     r.Answer,
		CategoryID: int64(r.Category),
		Difficulty: int(r.Difficulty),
	}
}

type searchRequest struct {
	SearchTerm string `json:"search_term"`
	// SearchTermAlt is the camel-case key some clients send.
	SearchTermAlt string `json:"searchTerm"`
}

func (r searchRequest) term() string {
	if r.SearchTerm != "" {
		return r.SearchTerm
	}
	return r.SearchTermAlt
}

type quizCategory struct {
	ID   flexInt `json:"id"`
	Type string  `json:"type"`
}

type playQuizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
	SessionID         string        `json:"session_id"`
}

func (r playQuizRequest) scope() catalog.Scope {
	if r.QuizCategory == nil {
		return catalog.AllCategories
	}
	return catalog.Scope(r.QuizCategory.ID)
}

type categoriesResponse struct {
	Success         bool             `json:"success"`
	Categories      map[int64]string `json:"categories"`
	TotalCategories int              `json:"total_categories"`
}

type questionsPageResponse struct {
	Success         bool               `json:"success"`
	Questions       []catalog.Question `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	Categories      map[int64]string   `json:"categories"`
	CurrentCategory *int64             `json:"current_category"`
	Page            int                `json:"page"`
	PageSize        int                `json:"page_size"`
}

type questionListResponse struct {
	Success         bool               `json:"success"`
	Questions       []catalog.Question `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *int64             `json:"current_category"`
}

type createQuestionResponse struct {
	Success  bool             `json:"success"`
	Created  int64            `json:"created"`
	Question catalog.Question `json:"question"`
}

type deleteQuestionResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

type playQuizResponse struct {
	Success   bool              `json:"success"`
	Question  *catalog.Question `json:"question"`
	SessionID string            `json:"session_id,omitempty"`
}

func categoryMap(cats []catalog.Category) map[int64]string {
	m := make(map[int64]string, len(cats))
	for _, c := range cats {
		m[c.ID] = c.Name
	}
	return m
}
