package repository

import (
	"context"

	"orderhub/internal/domain/model"
)

type ReviewRepository interface {
	// (user, product) が重複したら ErrDuplicate
	Create(ctx context.Context, review model.Review) error
	FindByID(ctx context.Context, reviewID string) (model.Review, error)
	FindDetailByID(ctx context.Context, reviewID string) (model.ReviewDetail, error)
	// rating と comment だけ更新
	Update(ctx context.Context, review model.Review) error
	Delete(ctx context.Context, reviewID string) error

	// 新しい順。total も返す
	ListByProductID(ctx context.Context, productID string, page int, limit int) ([]model.ReviewDetail, int64, error)
	ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.ReviewDetail, int64, error)
}
