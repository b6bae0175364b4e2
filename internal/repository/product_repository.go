package repository

import (
	"context"

	"orderhub/internal/domain/model"
)

// カタログ参照。存在しなければ ErrNotFound。
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
}
