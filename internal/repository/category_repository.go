package repository

import (
	"app/internal/domain/model"
	"context"
)

// 一覧取得時のinclude切替
type CategoryListQuery struct {
	IncludeSubcategories bool
	IncludeProducts      bool
}

type CategoryRepository interface {
	ListActive(ctx context.Context, q CategoryListQuery) ([]model.Category, error)
	FindByID(ctx context.Context, id string, q CategoryListQuery) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id string) error
}

type SubcategoryRepository interface {
	ListActive(ctx context.Context, categoryID string) ([]model.Subcategory, error)
	FindByID(ctx context.Context, id string) (model.Subcategory, error)
	Create(ctx context.Context, s model.Subcategory) (model.Subcategory, error)
	Update(ctx context.Context, s model.Subcategory) error
	Delete(ctx context.Context, id string) error
}
