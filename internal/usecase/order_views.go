package usecase

import (
	"context"
	"errors"

	"orderhub/internal/domain/model"
	repo "orderhub/internal/repository"

	"go.uber.org/zap"
)

// 注文 + 明細 + 商品サマリ + 注文者 の組み立て
type orderViews struct {
	orderItems repo.OrderItemRepository
	users      repo.UserRepository
	logger     *zap.Logger
}

func (v orderViews) load(ctx context.Context, o model.Order) (OrderOutput, error) {
	user, err := v.users.FindByID(ctx, o.UserID)
	if err != nil && !errors.Is(err, repo.ErrUserNotFound) {
		return OrderOutput{}, internalError(v.logger, "order.find_user", err, zap.String("user_id", o.UserID))
	}

	outs, err := v.build(ctx, []model.Order{o}, toUserSummary(user))
	if err != nil {
		return OrderOutput{}, err
	}
	return outs[0], nil
}

// 明細はまとめて1クエリで取る
func (v orderViews) build(ctx context.Context, orders []model.Order, user UserSummary) ([]OrderOutput, error) {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	rows, err := v.orderItems.ListDetailsByOrderIDs(ctx, ids)
	if err != nil {
		return []OrderOutput{}, internalError(v.logger, "order.list_items", err)
	}

	byOrder := make(map[string][]model.OrderItemDetail, len(orders))
	for _, r := range rows {
		byOrder[r.OrderID] = append(byOrder[r.OrderID], r)
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, user, byOrder[o.ID]))
	}
	return outs, nil
}
