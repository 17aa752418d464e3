package catalog

import (
	"context"
	"math/rand/v2"
)

// Selector picks the next quiz question. It holds no session memory: the
// caller passes every id already asked on each call.
type Selector struct {
	store QuestionStore
	intn  func(n int) int
}

// NewSelector builds a selector over store. intn must return a uniform value
// in [0, n); nil selects math/rand/v2.
func NewSelector(store QuestionStore, intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{store: store, intn: intn}
}

// Next returns a random question from scope that is not in askedIDs.
// ok is false when the pool is exhausted.
func (s *Selector) Next(ctx context.Context, scope Scope, askedIDs []int64) (q Question, ok bool, err error) {
	var pool []Question
	if scope == AllCategories {
		pool, err = s.store.ListAll(ctx)
	} else {
		pool, err = s.store.FindByCategory(ctx, int64(scope))
	}
	if err != nil {
		return Question{}, false, err
	}

	q, ok = s.pick(pool, askedIDs)
	return q, ok, nil
}

func (s *Selector) pick(pool []Question, askedIDs []int64) (Question, bool) {
	remaining := excludeAsked(pool, askedIDs)
	switch len(remaining) {
	case 0:
		return Question{}, false
	case 1:
		return remaining[0], true
	}
	idx := s.intn(len(remaining))
	if idx < 0 || idx >= len(remaining) {
		idx = 0
	}
	return remaining[idx], true
}

func excludeAsked(pool []Question, askedIDs []int64) []Question {
	if len(askedIDs) == 0 {
		return pool
	}
	asked := make(map[int64]struct{}, len(askedIDs))
	for _, id := range askedIDs {
		asked[id] = struct{}{}
	}
	remaining := make([]Question, 0, len(pool))
	for _, q := range pool {
		if _, seen := asked[q.ID]; !seen {
			remaining = append(remaining, q)
		}
	}
	return remaining
}
