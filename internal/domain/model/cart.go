package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartStatus string

const (
	CartStatusActive  CartStatus = "active"
	CartStatusOrdered CartStatus = "ordered"
)

// 1ユーザーにつきACTIVEは1つ（(user_id, status)の一意制約で担保）
type Cart struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex:carts_user_status_unique" json:"user_id"`
	Status    CartStatus `gorm:"type:varchar(20);not null;default:'active';uniqueIndex:carts_user_status_unique" json:"status"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
