package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subcategory struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID  string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	Products    []Product `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:SET NULL" json:"products,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
