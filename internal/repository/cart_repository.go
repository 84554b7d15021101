package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// ACTIVEカートを取得し、無ければ作成（同一Tx内で呼ぶこと）
	GetOrCreateActiveByUserID(ctx context.Context, userID string) (model.Cart, error)
	FindActiveByUserID(ctx context.Context, userID string) (model.Cart, error)
	UpdateStatus(ctx context.Context, cartID string, status model.CartStatus) error
	// 明細を全削除（カート行は残す）
	Clear(ctx context.Context, cartID string) error
}
