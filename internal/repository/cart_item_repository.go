package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartItemRepository interface {
	// created_at昇順
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	// 同一商品は数量加算。新規作成時のみunitPriceをスナップショット
	UpsertByCartAndProduct(ctx context.Context, cartID string, productID string, addQty int64, unitPrice decimal.Decimal) error
	UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error
	DeleteByID(ctx context.Context, cartItemID string) error
	FindByCartAndID(ctx context.Context, cartID string, cartItemID string) (model.CartItem, error)
}
