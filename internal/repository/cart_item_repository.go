package repository

import (
	"context"

	"orderhub/internal/domain/model"
)

type CartItemRepository interface {
	// 商品タイトル昇順
	ListDetailsByCartID(ctx context.Context, cartID string) ([]model.CartItemDetail, error)
	// 同一商品は数量を加算（1文で upsert）
	AddQuantity(ctx context.Context, item model.CartItem) error
	FindByCartAndProduct(ctx context.Context, cartID string, productID string) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID string, qty int) error
	DeleteByID(ctx context.Context, cartItemID string) error
}
