package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type SubcategoryUsecase struct {
	subcategoryRepo repo.SubcategoryRepository
	categoryRepo    repo.CategoryRepository
}

// DI
func NewSubcategoryUsecase(
	subcategoryRepo repo.SubcategoryRepository,
	categoryRepo repo.CategoryRepository,
) *SubcategoryUsecase {
	return &SubcategoryUsecase{
		subcategoryRepo: subcategoryRepo,
		categoryRepo:    categoryRepo,
	}
}

type SubcategoryListOutput struct {
	Items []model.Subcategory `json:"items"`
	Count int                 `json:"count"`
}

type SaveSubcategoryInput struct {
	CategoryID  string
	Name        string
	Description string
	IsActive    bool
}

// 有効サブカテゴリの一覧。categoryIDは任意の絞り込み
func (u *SubcategoryUsecase) ListSubcategories(ctx context.Context, categoryID string) (SubcategoryListOutput, error) {
	items, err := u.subcategoryRepo.ListActive(ctx, categoryID)
	if err != nil {
		return SubcategoryListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SubcategoryListOutput{Items: items, Count: len(items)}, nil
}

func (u *SubcategoryUsecase) GetSubcategory(ctx context.Context, id string) (model.Subcategory, error) {
	if id == "" {
		return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s, err := u.subcategoryRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Subcategory{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Subcategory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

// 管理者用：サブカテゴリ作成（親カテゴリの存在チェックあり）
func (u *SubcategoryUsecase) CreateSubcategory(ctx context.Context, in SaveSubcategoryInput) (model.Subcategory, error) {
	if in.CategoryID == "" {
		return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "category_id is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(in.Name) > 255 {
		return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "name too long")
	}

	// 親カテゴリの存在チェック
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID, repo.CategoryListQuery{}); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Subcategory{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return model.Subcategory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.subcategoryRepo.Create(ctx, model.Subcategory{
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return model.Subcategory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 管理者用：サブカテゴリ更新
func (u *SubcategoryUsecase) UpdateSubcategory(ctx context.Context, id string, in SaveSubcategoryInput) (model.Subcategory, error) {
	if id == "" {
		return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	err := u.subcategoryRepo.Update(ctx, model.Subcategory{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Subcategory{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Subcategory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s, err := u.subcategoryRepo.FindByID(ctx, id)
	if err != nil {
		return model.Subcategory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

// 管理者用：サブカテゴリ削除（商品の参照はDB制約でSET NULL）
func (u *SubcategoryUsecase) DeleteSubcategory(ctx context.Context, id string) error {
	if id == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.subcategoryRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
