package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type SubcategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewSubcategoryGormRepository(db *gorm.DB) *SubcategoryGormRepository {
	return &SubcategoryGormRepository{db: db}
}

// 有効なサブカテゴリをname昇順で返す。categoryIDは任意の絞り込み
func (r *SubcategoryGormRepository) ListActive(ctx context.Context, categoryID string) ([]model.Subcategory, error) {
	var subcategories []model.Subcategory

	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc")

	if categoryID != "" {
		tx = tx.Where("category_id = ?", categoryID)
	}

	if err := tx.Find(&subcategories).Error; err != nil {
		return []model.Subcategory{}, err
	}
	return subcategories, nil
}

// IDでサブカテゴリを取得
func (r *SubcategoryGormRepository) FindByID(ctx context.Context, id string) (model.Subcategory, error) {
	var s model.Subcategory

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Subcategory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Subcategory{}, err
	}
	return s, nil
}

// サブカテゴリの作成
func (r *SubcategoryGormRepository) Create(ctx context.Context, s model.Subcategory) (model.Subcategory, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Subcategory{}, err
	}
	return s, nil
}

// サブカテゴリの更新
func (r *SubcategoryGormRepository) Update(ctx context.Context, s model.Subcategory) error {
	res := r.db.WithContext(ctx).Model(&model.Subcategory{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":        s.Name,
		"description": s.Description,
		"is_active":   s.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// サブカテゴリの削除（商品側のsubcategory_idはDBのSET NULLに任せる）
func (r *SubcategoryGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Subcategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
