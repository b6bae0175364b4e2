package repository

import (
	"context"

	"orderhub/internal/domain/model"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}
	return nil
}

// 注文ID順 → 商品タイトル昇順
func (r *OrderItemGormRepository) ListDetailsByOrderIDs(ctx context.Context, orderIDs []string) ([]model.OrderItemDetail, error) {
	if len(orderIDs) == 0 {
		return []model.OrderItemDetail{}, nil
	}

	var rows []model.OrderItemDetail
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.order_id, order_items.product_id, order_items.quantity, order_items.price_at_purchase, " +
			"products.title AS product_title, products.description AS product_description").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Order("order_items.order_id asc").
		Order("products.title asc").
		Scan(&rows).Error
	if err != nil {
		return []model.OrderItemDetail{}, err
	}
	return rows, nil
}
