package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListCategories(ctx context.Context) ([]Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Category), args.Error(1)
}

func (m *mockStore) ListAll(ctx context.Context) ([]Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Question), args.Error(1)
}

func (m *mockStore) FindByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]Question), args.Error(1)
}

func (m *mockStore) Search(ctx context.Context, term string) ([]Question, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]Question), args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, q Question) (Question, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(Question), args.Error(1)
}

func (m *mockStore) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func makeQuestions(n int, category int64) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:         int64(i + 1),
			Text:       "Question",
			Answer:     "Answer",
			CategoryID: category,
			Difficulty: 1 + i%5,
		}
	}
	return qs
}
