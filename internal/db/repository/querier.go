package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
)

// querier is the subset of *pgxpool.Pool the repositories use.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CatalogStore combines the category and question repositories into a
// catalog.Store.
type CatalogStore struct {
	*CategoryRepository
	*QuestionRepository
}

var _ catalog.Store = (*CatalogStore)(nil)

func NewCatalogStore(db querier) *CatalogStore {
	return &CatalogStore{
		CategoryRepository: NewCategoryRepository(db),
		QuestionRepository: NewQuestionRepository(db),
	}
}

// classify marks connectivity failures as catalog.ErrStoreUnavailable and
// leaves query errors untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		pgconn.Timeout(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %v", op, catalog.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
