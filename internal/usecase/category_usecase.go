package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

type ListCategoriesInput struct {
	IncludeSubcategories bool
	IncludeProducts      bool
}

type CategoryListOutput struct {
	Items []model.Category `json:"items"`
	Count int              `json:"count"`
}

type SaveCategoryInput struct {
	Name        string
	Description string
	IsActive    bool
}

// 有効カテゴリの一覧（name昇順）
func (u *CategoryUsecase) ListCategories(ctx context.Context, in ListCategoriesInput) (CategoryListOutput, error) {
	items, err := u.categoryRepo.ListActive(ctx, repo.CategoryListQuery{
		IncludeSubcategories: in.IncludeSubcategories,
		IncludeProducts:      in.IncludeProducts,
	})
	if err != nil {
		return CategoryListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CategoryListOutput{Items: items, Count: len(items)}, nil
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, id string, in ListCategoriesInput) (model.Category, error) {
	if id == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.categoryRepo.FindByID(ctx, id, repo.CategoryListQuery{
		IncludeSubcategories: in.IncludeSubcategories,
		IncludeProducts:      in.IncludeProducts,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 管理者用：カテゴリ作成
func (u *CategoryUsecase) CreateCategory(ctx context.Context, in SaveCategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(in.Name) > 255 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name too long")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 管理者用：カテゴリ更新
func (u *CategoryUsecase) UpdateCategory(ctx context.Context, id string, in SaveCategoryInput) (model.Category, error) {
	if id == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	err := u.categoryRepo.Update(ctx, model.Category{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.categoryRepo.FindByID(ctx, id, repo.CategoryListQuery{})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 管理者用：カテゴリ削除（配下はDB制約でCASCADE）
func (u *CategoryUsecase) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
