package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// カートの明細。
// unit_price は追加時点の価格スナップショット（以後の商品価格変更に追随しない）。
// (cart_id, product_id) は一意。同一商品の追加は数量加算になる。
type CartItem struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    string          `gorm:"type:uuid;not null;uniqueIndex:cart_items_unique_product_per_cart" json:"cart_id"`
	ProductID string          `gorm:"type:uuid;not null;uniqueIndex:cart_items_unique_product_per_cart" json:"product_id"`
	Quantity  int64           `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null;column:unit_price" json:"unit_price"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
