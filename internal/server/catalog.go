package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
	"github.com/gokatarajesh/trivia-catalog/internal/logging"
	"github.com/gokatarajesh/trivia-catalog/internal/play"
	httperrors "github.com/gokatarajesh/trivia-catalog/pkg/http/errors"
)

// catalogService is the facade the handlers call into.
type catalogService interface {
	GetCategories(ctx context.Context) ([]catalog.Category, error)
	GetQuestionsPage(ctx context.Context, page int) (catalog.QuestionPage, error)
	GetQuestionsByCategory(ctx context.Context, categoryID int64) (catalog.CategoryQuestions, error)
	SearchQuestions(ctx context.Context, term string) ([]catalog.Question, error)
	CreateQuestion(ctx context.Context, q catalog.Question) (catalog.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
	PlayQuiz(ctx context.Context, scope catalog.Scope, askedIDs []int64) (*catalog.Question, error)
}

// SessionTracker remembers asked ids per quiz session; *play.Tracker
// implements it.
type SessionTracker interface {
	Asked(ctx context.Context, session string) ([]int64, error)
	Record(ctx context.Context, session string, id int64) error
	Reset(ctx context.Context, session string) error
}

// CatalogHandlers exposes the catalog facade over HTTP.
type CatalogHandlers struct {
	service catalogService
	tracker SessionTracker
	logger  zerolog.Logger
}

// NewCatalogHandlers builds the handlers. tracker may be nil, in which case
// quiz history is whatever the client sends.
func NewCatalogHandlers(service catalogService, tracker SessionTracker, logger zerolog.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		service: service,
		tracker: tracker,
		logger:  logger.With().Str("component", "catalog_http").Logger(),
	}
}

// Register mounts the catalog routes on mux.
func (h *CatalogHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("GET /categories/{id}/questions", h.QuestionsByCategory)
	mux.HandleFunc("POST /categories/{id}/questions", h.QuestionsByCategory)
	mux.HandleFunc("POST /quizzes", h.PlayQuiz)
	mux.HandleFunc("DELETE /quizzes/{session_id}", h.ResetQuiz)
}

// ListCategories handles GET /categories.
func (h *CatalogHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.GetCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categoriesResponse{
		Success:         true,
		Categories:      categoryMap(cats),
		TotalCategories: len(cats),
	})
}

// ListQuestions handles GET /questions?page=N.
func (h *CatalogHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPage, "page must be an integer")
			return
		}
		page = n
	}

	result, err := h.service.GetQuestionsPage(r.Context(), page)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, questionsPageResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.TotalQuestions,
		Categories:     categoryMap(result.Categories),
		Page:           result.PageNumber,
		PageSize:       result.PageSize,
	})
}

// CreateQuestion handles POST /questions.
func (h *CatalogHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	created, err := h.service.CreateQuestion(r.Context(), req.toQuestion())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, createQuestionResponse{
		Success:  true,
		Created:  created.ID,
		Question: created,
	})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *CatalogHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deleteQuestionResponse{Success: true, Deleted: id})
}

// SearchQuestions handles POST /questions/search.
func (h *CatalogHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	qs, err := h.service.SearchQuestions(r.Context(), req.term())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, questionListResponse{
		Success:        true,
		Questions:      qs,
		TotalQuestions: len(qs),
	})
}

// QuestionsByCategory handles GET and POST /categories/{id}/questions.
func (h *CatalogHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.service.GetQuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	current := result.CategoryID
	respondJSON(w, http.StatusOK, questionListResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  len(result.Questions),
		CurrentCategory: &current,
	})
}

// PlayQuiz handles POST /quizzes. When a tracker is configured the server
// also remembers what the session was served.
func (h *CatalogHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req playQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	scope := req.scope()
	if scope < catalog.AllCategories {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "quiz category must not be negative", "quiz_category")
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)
	asked := req.PreviousQuestions
	session := req.SessionID

	if h.tracker != nil {
		if session == "" {
			session = play.NewSessionID()
		} else {
			tracked, err := h.tracker.Asked(ctx, session)
			switch {
			case errors.Is(err, play.ErrInvalidSession):
				httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidSession, "session_id must be a UUID", "session_id")
				return
			case err != nil:
				logger.Warn().Err(err).Str("session_id", session).Msg("quiz session lookup failed, using client history")
			default:
				asked = play.Merge(asked, tracked)
			}
		}
	}

	next, err := h.service.PlayQuiz(ctx, scope, asked)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	if h.tracker != nil && next != nil {
		if err := h.tracker.Record(ctx, session, next.ID); err != nil {
			logger.Warn().Err(err).Str("session_id", session).Int64("question_id", next.ID).Msg("record quiz question failed")
		}
	}

	resp := playQuizResponse{Success: true, Question: next}
	if h.tracker != nil {
		resp.SessionID = session
	}
	respondJSON(w, http.StatusOK, resp)
}

// ResetQuiz handles DELETE /quizzes/{session_id}.
func (h *CatalogHandlers) ResetQuiz(w http.ResponseWriter, r *http.Request) {
	if h.tracker == nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "quiz sessions are not tracked")
		return
	}

	session := r.PathValue("session_id")
	if err := h.tracker.Reset(r.Context(), session); err != nil {
		if errors.Is(err, play.ErrInvalidSession) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidSession, "session_id must be a UUID", "session_id")
			return
		}
		h.logger.Error().Err(err).Str("session_id", session).Msg("reset quiz session failed")
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeServiceUnavailable, "quiz session store unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondServiceError maps the catalog error kinds onto HTTP statuses.
func (h *CatalogHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch catalog.KindOf(err) {
	case catalog.KindBadRequest:
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, verr.Message, verr.Field)
			return
		}
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "bad request")
	case catalog.KindNotFound:
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "resource not found")
	case catalog.KindUnprocessable:
		httperrors.RespondUnprocessable(w, "unprocessable")
	default:
		h.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("catalog operation failed")
		httperrors.RespondInternalError(w, "internal server error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidID, name+" must be a non-negative integer")
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
