package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
)

func TestQuestionRepository_ListAll(t *testing.T) {
	db := new(mockQuerier)
	rows := newFakeRows(
		[]any{int64(1), "What is H2O?", "Water", int64(1), 1},
		[]any{int64(2), "Who painted the Mona Lisa?", "Leonardo", int64(2), 3},
	)
	db.On("Query", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return assert.ObjectsAreEqual(`SELECT id, question, answer, category, difficulty FROM questions ORDER BY id`, sql)
	}), mock.Anything).Return(rows, nil)

	got, err := NewQuestionRepository(db).ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []catalog.Question{
		{ID: 1, Text: "What is H2O?", Answer: "Water", CategoryID: 1, Difficulty: 1},
		{ID: 2, Text: "Who painted the Mona Lisa?", Answer: "Leonardo", CategoryID: 2, Difficulty: 3},
	}, got)
	assert.True(t, rows.closed)
	db.AssertExpectations(t)
}

func TestQuestionRepository_SearchPassesTermVerbatim(t *testing.T) {
	db := new(mockQuerier)
	db.On("Query", mock.Anything, mock.Anything, []any{"50%"}).Return(newFakeRows(), nil)

	got, err := NewQuestionRepository(db).Search(context.Background(), "50%")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	db.AssertExpectations(t)
}

func TestQuestionRepository_FindByCategory(t *testing.T) {
	db := new(mockQuerier)
	db.On("Query", mock.Anything, mock.Anything, []any{int64(4)}).
		Return(newFakeRows([]any{int64(7), "Q", "A", int64(4), 2}), nil)

	got, err := NewQuestionRepository(db).FindByCategory(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].CategoryID)
}

func TestQuestionRepository_RowsErrIsReported(t *testing.T) {
	db := new(mockQuerier)
	rows := newFakeRows()
	rows.err = errors.New("protocol violation")
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	_, err := NewQuestionRepository(db).ListAll(context.Background())
	assert.ErrorContains(t, err, "protocol violation")
	assert.NotErrorIs(t, err, catalog.ErrStoreUnavailable)
}

func TestQuestionRepository_Insert(t *testing.T) {
	db := new(mockQuerier)
	q := catalog.Question{Text: "Q", Answer: "A", CategoryID: 1, Difficulty: 2}
	db.On("QueryRow", mock.Anything, mock.Anything, []any{"Q", "A", int64(1), 2}).
		Return(fakeRow{values: []any{int64(31)}})

	got, err := NewQuestionRepository(db).Insert(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(31), got.ID)
	assert.Equal(t, q.Text, got.Text)
}

func TestQuestionRepository_InsertValidates(t *testing.T) {
	db := new(mockQuerier)

	_, err := NewQuestionRepository(db).Insert(context.Background(), catalog.Question{Answer: "A", CategoryID: 1, Difficulty: 1})
	assert.ErrorIs(t, err, catalog.ErrBadRequest)
	db.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuestionRepository_DeleteByID(t *testing.T) {
	db := new(mockQuerier)
	db.On("Exec", mock.Anything, mock.Anything, []any{int64(3)}).Return(pgconn.NewCommandTag("DELETE 1"), nil).Once()
	db.On("Exec", mock.Anything, mock.Anything, []any{int64(3)}).Return(pgconn.NewCommandTag("DELETE 0"), nil)
	repo := NewQuestionRepository(db)

	assert.NoError(t, repo.DeleteByID(context.Background(), 3))
	assert.ErrorIs(t, repo.DeleteByID(context.Background(), 3), catalog.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByID(context.Background(), 3), catalog.ErrNotFound)
}

func TestQuestionRepository_TimeoutIsUnavailable(t *testing.T) {
	db := new(mockQuerier)
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	_, err := NewQuestionRepository(db).ListAll(context.Background())
	assert.ErrorIs(t, err, catalog.ErrStoreUnavailable)
}

func TestCategoryRepository_ListCategories(t *testing.T) {
	db := new(mockQuerier)
	db.On("Query", mock.Anything, `SELECT id, type FROM categories ORDER BY type, id`, mock.Anything).
		Return(newFakeRows([]any{int64(2), "Art"}, []any{int64(1), "Science"}), nil)

	got, err := NewCatalogStore(db).ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []catalog.Category{{ID: 2, Name: "Art"}, {ID: 1, Name: "Science"}}, got)
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify("op", nil))
	assert.ErrorIs(t, classify("op", context.Canceled), catalog.ErrStoreUnavailable)

	plain := classify("op", errors.New("duplicate key"))
	assert.NotErrorIs(t, plain, catalog.ErrStoreUnavailable)
	assert.EqualError(t, plain, "op: duplicate key")
}
