package repository

import (
	"context"

	"orderhub/internal/domain/model"
)

type CartRepository interface {
	// なければ cart を作る。既にあれば既存を返す（user_id 一意）
	GetOrCreateByUserID(ctx context.Context, cart model.Cart) (model.Cart, error)
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	// 空でもエラーにしない
	ClearByUserID(ctx context.Context, userID string) error
}
