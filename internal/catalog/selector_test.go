package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSelectorNeverRepeatsAndExhausts(t *testing.T) {
	store := new(mockStore)
	pool := makeQuestions(6, 2)
	store.On("FindByCategory", mock.Anything, int64(2)).Return(pool, nil)

	sel := NewSelector(store, nil)
	var asked []int64
	seen := map[int64]bool{}

	for i := 0; i < len(pool); i++ {
		q, ok, err := sel.Next(context.Background(), Scope(2), asked)
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, seen[q.ID], "question %d repeated", q.ID)
		seen[q.ID] = true
		asked = append(asked, q.ID)
	}

	_, ok, err := sel.Next(context.Background(), Scope(2), asked)
	require.NoError(t, err)
	assert.False(t, ok, "pool should be exhausted")
	assert.Len(t, seen, len(pool))
}

func TestSelectorAllCategoriesUsesFullScan(t *testing.T) {
	store := new(mockStore)
	store.On("ListAll", mock.Anything).Return(makeQuestions(3, 1), nil)

	sel := NewSelector(store, func(n int) int { return n - 1 })
	q, ok, err := sel.Next(context.Background(), AllCategories, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), q.ID)
	store.AssertNotCalled(t, "FindByCategory", mock.Anything, mock.Anything)
}

func TestSelectorDrawsOverRemainingPool(t *testing.T) {
	store := new(mockStore)
	store.On("ListAll", mock.Anything).Return(makeQuestions(5, 1), nil)

	var sizes []int
	sel := NewSelector(store, func(n int) int {
		sizes = append(sizes, n)
		return n - 1
	})

	q, ok, err := sel.Next(context.Background(), AllCategories, []int64{2, 5})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{3}, sizes, "draw must range over the filtered pool")
	assert.Equal(t, int64(4), q.ID)
}

func TestSelectorSingleCandidateIsDeterministic(t *testing.T) {
	store := new(mockStore)
	store.On("ListAll", mock.Anything).Return(makeQuestions(1, 1), nil)

	sel := NewSelector(store, func(n int) int {
		t.Fatalf("random source consulted for a single candidate")
		return 0
	})
	for i := 0; i < 5; i++ {
		q, ok, err := sel.Next(context.Background(), AllCategories, nil)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(1), q.ID)
	}
}

func TestSelectorClampsOutOfRangeDraw(t *testing.T) {
	store := new(mockStore)
	store.On("ListAll", mock.Anything).Return(makeQuestions(3, 1), nil)

	sel := NewSelector(store, func(n int) int { return n })
	q, ok, err := sel.Next(context.Background(), AllCategories, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), q.ID)
}

func TestSelectorEmptyCategoryIsExhausted(t *testing.T) {
	store := new(mockStore)
	store.On("FindByCategory", mock.Anything, int64(9)).Return([]Question{}, nil)

	_, ok, err := NewSelector(store, nil).Next(context.Background(), Scope(9), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectorPropagatesStoreError(t *testing.T) {
	store := new(mockStore)
	boom := errors.New("connection reset")
	store.On("ListAll", mock.Anything).Return([]Question(nil), boom)

	_, ok, err := NewSelector(store, nil).Next(context.Background(), AllCategories, nil)
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestSelectorDefaultSourceStaysInRange(t *testing.T) {
	store := new(mockStore)
	pool := makeQuestions(4, 1)
	store.On("ListAll", mock.Anything).Return(pool, nil)

	sel := NewSelector(store, nil)
	for i := 0; i < 200; i++ {
		q, ok, err := sel.Next(context.Background(), AllCategories, []int64{1})
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotEqual(t, int64(1), q.ID)
		assert.Contains(t, []int64{2, 3, 4}, q.ID)
	}
}
