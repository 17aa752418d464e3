package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ServiceOptions configures the catalog facade.
type ServiceOptions struct {
	// PageSize is the number of questions per browse page (default 10).
	PageSize int
	// Intn overrides the quiz random source; nil uses math/rand/v2.
	Intn    func(n int) int
	Metrics *Metrics
}

// Service composes the stores, the paginator and the quiz selector into the
// operations the HTTP layer exposes.
type Service struct {
	categories CategoryStore
	questions  QuestionStore
	selector   *Selector
	pageSize   int
	metrics    *Metrics
	logger     zerolog.Logger
}

// NewService builds the facade over a Store.
func NewService(store Store, opts ServiceOptions, logger zerolog.Logger) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		categories: store,
		questions:  store,
		selector:   NewSelector(store, opts.Intn),
		pageSize:   pageSize,
		metrics:    opts.Metrics,
		logger:     logger.With().Str("component", "catalog").Logger(),
	}
}

// PageSize reports the configured page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// GetCategories lists categories by name. An empty catalog is ErrNotFound.
func (s *Service) GetCategories(ctx context.Context) (cats []Category, err error) {
	defer s.metrics.observe("get_categories", time.Now(), &err)

	cats, err = s.categories.ListCategories(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("list categories failed")
		if errors.Is(err, ErrStoreUnavailable) {
			return nil, fmt.Errorf("get categories: %w", err)
		}
		return nil, fmt.Errorf("get categories: %w: %v", ErrStoreUnavailable, err)
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("get categories: %w", ErrNotFound)
	}
	return cats, nil
}

// GetQuestionsPage returns the 1-based page of all questions. An empty page,
// whether past the end or because the catalog is empty, is ErrNotFound.
func (s *Service) GetQuestionsPage(ctx context.Context, page int) (result QuestionPage, err error) {
	defer s.metrics.observe("get_questions_page", time.Now(), &err)

	if page < 1 {
		return QuestionPage{}, fmt.Errorf("get questions page %d: %w", page, ErrBadRequest)
	}

	all, err := s.questions.ListAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Int("page", page).Msg("list questions failed")
		return QuestionPage{}, storeFault("get questions page", err)
	}

	items := Paginate(all, page, s.pageSize)
	if len(items) == 0 {
		return QuestionPage{}, fmt.Errorf("get questions page %d: %w", page, ErrNotFound)
	}

	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("list categories for page failed")
		return QuestionPage{}, storeFault("get questions page", err)
	}

	return QuestionPage{
		Questions:      items,
		PageNumber:     page,
		PageSize:       s.pageSize,
		TotalQuestions: len(all),
		Categories:     cats,
	}, nil
}

// GetQuestionsByCategory lists every question in a category. Any store
// failure is reported as ErrUnprocessable.
func (s *Service) GetQuestionsByCategory(ctx context.Context, categoryID int64) (result CategoryQuestions, err error) {
	defer s.metrics.observe("get_questions_by_category", time.Now(), &err)

	qs, err := s.questions.FindByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("category_id", categoryID).Msg("find by category failed")
		return CategoryQuestions{}, fmt.Errorf("get questions by category %d: %w: %v", categoryID, ErrUnprocessable, err)
	}
	if qs == nil {
		qs = []Question{}
	}
	return CategoryQuestions{CategoryID: categoryID, Questions: qs}, nil
}

// SearchQuestions returns questions whose text contains term (case-sensitive).
// A blank term is ErrBadRequest and zero matches is ErrNotFound.
func (s *Service) SearchQuestions(ctx context.Context, term string) (qs []Question, err error) {
	defer s.metrics.observe("search_questions", time.Now(), &err)

	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("search questions: search term required: %w", ErrBadRequest)
	}

	qs, err = s.questions.Search(ctx, term)
	if err != nil {
		s.logger.Warn().Err(err).Str("term", term).Msg("search failed")
		return nil, storeFault("search questions", err)
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("search questions %q: %w", term, ErrNotFound)
	}
	return qs, nil
}

// CreateQuestion validates and stores a new question. Category references are
// not checked against the category table.
func (s *Service) CreateQuestion(ctx context.Context, q Question) (created Question, err error) {
	defer s.metrics.observe("create_question", time.Now(), &err)

	if err := q.Validate(); err != nil {
		return Question{}, fmt.Errorf("create question: %w", err)
	}
	q.ID = 0

	created, err = s.questions.Insert(ctx, q)
	if err != nil {
		if errors.Is(err, ErrBadRequest) {
			return Question{}, fmt.Errorf("create question: %w", err)
		}
		s.logger.Warn().Err(err).Msg("insert question failed")
		return Question{}, storeFault("create question", err)
	}

	s.logger.Info().Int64("question_id", created.ID).Int64("category_id", created.CategoryID).Msg("question created")
	return created, nil
}

// DeleteQuestion removes a question by id. Deleting a missing id is
// ErrNotFound every time.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) (err error) {
	defer s.metrics.observe("delete_question", time.Now(), &err)

	if err := s.questions.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("delete question %d: %w", id, ErrNotFound)
		}
		s.logger.Warn().Err(err).Int64("question_id", id).Msg("delete question failed")
		return fmt.Errorf("delete question %d: %w: %v", id, ErrUnprocessable, err)
	}

	s.logger.Info().Int64("question_id", id).Msg("question deleted")
	return nil
}

// PlayQuiz returns the next unseen question for scope, or nil once every
// question in scope has been asked.
func (s *Service) PlayQuiz(ctx context.Context, scope Scope, askedIDs []int64) (next *Question, err error) {
	defer s.metrics.observe("play_quiz", time.Now(), &err)

	q, ok, err := s.selector.Next(ctx, scope, askedIDs)
	if err != nil {
		s.logger.Warn().Err(err).Int64("scope", int64(scope)).Msg("quiz pool lookup failed")
		return nil, storeFault("play quiz", err)
	}
	if !ok {
		s.metrics.quizExhausted(scope)
		s.logger.Debug().Int64("scope", int64(scope)).Int("asked", len(askedIDs)).Msg("quiz pool exhausted")
		return nil, nil
	}
	return &q, nil
}
