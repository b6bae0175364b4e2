package repository

import (
	"context"

	"orderhub/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	// 注文ごと・商品タイトル昇順
	ListDetailsByOrderIDs(ctx context.Context, orderIDs []string) ([]model.OrderItemDetail, error)
}
