package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
)

// CategoryRepository reads the seeded category table.
type CategoryRepository struct {
	db querier
}

func NewCategoryRepository(db querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListCategories returns every category ordered by name.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type FROM categories ORDER BY type, id`)
	if err != nil {
		return nil, classify("list categories", err)
	}
	defer rows.Close()

	cats := []catalog.Category{}
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, classify("scan category", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate categories", err)
	}
	return cats, nil
}
