package repository

import (
	"context"

	"orderhub/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	// 行ロック付き（tx内で使う）
	FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error)
	// 新しい順
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	// DELIVERED の注文でその商品を含むものの件数
	CountDeliveredWithProduct(ctx context.Context, userID string, productID string) (int64, error)
}
