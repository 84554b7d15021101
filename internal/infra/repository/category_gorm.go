package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// 有効なカテゴリをname昇順で返す。includeは任意
func (r *CategoryGormRepository) ListActive(ctx context.Context, q repo.CategoryListQuery) ([]model.Category, error) {
	var categories []model.Category

	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc")

	if q.IncludeSubcategories {
		tx = tx.Preload("Subcategories", "is_active = ?", true)
	}
	if q.IncludeProducts {
		tx = tx.Preload("Products", "is_active = ?", true)
	}

	if err := tx.Find(&categories).Error; err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}

// IDでカテゴリを取得
func (r *CategoryGormRepository) FindByID(ctx context.Context, id string, q repo.CategoryListQuery) (model.Category, error) {
	var c model.Category

	tx := r.db.WithContext(ctx)
	if q.IncludeSubcategories {
		tx = tx.Preload("Subcategories", "is_active = ?", true)
	}
	if q.IncludeProducts {
		tx = tx.Preload("Products", "is_active = ?", true)
	}

	err := tx.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// カテゴリの作成
func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// カテゴリの更新
func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"is_active":   c.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カテゴリの削除（サブカテゴリ・商品はDBのCASCADEに任せる）
func (r *CategoryGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
