package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"orderhub/internal/domain/model"
	repo "orderhub/internal/repository"

	"go.uber.org/zap"
)

// 注文ステータスの更新と履歴
type OrderStatusUsecase struct {
	tx           repo.TransactionManager
	orders       repo.OrderRepository
	auditRepo    repo.AuditLogRepository
	views        orderViews
	ids          IDGenerator
	clock        Clock
	events       OrderEventPublisher
	eventTimeout time.Duration
	metrics      OrderMetrics
	logger       *zap.Logger
}

func NewOrderStatusUsecase(d OrderUsecaseDeps, auditRepo repo.AuditLogRepository) *OrderStatusUsecase {
	d = d.withDefaults()
	return &OrderStatusUsecase{
		tx:           d.Tx,
		orders:       d.Orders,
		auditRepo:    auditRepo,
		views:        orderViews{orderItems: d.OrderItems, users: d.Users, logger: d.Logger},
		ids:          d.IDs,
		clock:        d.Clock,
		events:       d.Events,
		eventTimeout: d.EventTimeout,
		metrics:      d.Metrics,
		logger:       d.Logger,
	}
}

type UpdateOrderStatusInput struct {
	Status string
}

// UpdateStatus は行ロックを取ってから遷移を判定する。
// DELIVERED からは DELIVERED 以外に変えられない（400）。同じステータスなら何もしない。
func (u *OrderStatusUsecase) UpdateStatus(ctx context.Context, actorUserID string, orderID string, in UpdateOrderStatusInput) (OrderOutput, error) {
	next, ok := model.ParseOrderStatus(in.Status)
	if !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var (
		updated  model.Order
		previous model.OrderStatus
		changed  bool
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return err
		}

		// 終端ガード
		if !model.CanTransition(o.Status, next) {
			return NewHTTPError(http.StatusBadRequest,
				"cannot change status of a delivered order to "+string(next))
		}

		previous = o.Status
		updated = o

		// すでに同じなら何もしない
		if o.Status == next {
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return err
		}
		now := u.clock.Now()
		updated.Status = next
		updated.UpdatedAt = now
		changed = true

		// 監査ログ（同じtx）
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ID:           u.ids.NewID(),
			ActorUserID:  actorUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(previous) + `"}`,
			AfterJSON:    `{"status":"` + string(next) + `"}`,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return OrderOutput{}, internalError(u.logger, "order.update_status", err,
			zap.String("order_id", orderID), zap.String("status", string(next)))
	}

	out, err := u.views.load(ctx, updated)
	if err != nil {
		return OrderOutput{}, err
	}

	if changed {
		u.metrics.StatusChanged(previous, next)
		u.logger.Info("order status changed",
			zap.String("order_id", orderID),
			zap.String("from", string(previous)),
			zap.String("to", string(next)),
			zap.String("actor_user_id", actorUserID),
		)
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.eventTimeout)
		defer cancel()
		if err := u.events.PublishOrderStatusChanged(pubCtx, out, previous); err != nil {
			u.logger.Warn("failed to publish order status event",
				zap.String("order_id", orderID), zap.Error(err))
		}
	}

	return out, nil
}

// History は注文のステータス変更履歴（古い順）。
func (u *OrderStatusUsecase) History(ctx context.Context, orderID string) ([]OrderHistoryEntry, error) {
	if _, err := u.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return []OrderHistoryEntry{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return []OrderHistoryEntry{}, internalError(u.logger, "order.history.find", err, zap.String("order_id", orderID))
	}

	logs, err := u.auditRepo.ListByResource(ctx, model.AuditResourceOrder, orderID)
	if err != nil {
		return []OrderHistoryEntry{}, internalError(u.logger, "order.history", err, zap.String("order_id", orderID))
	}

	out := make([]OrderHistoryEntry, 0, len(logs))
	for _, l := range logs {
		out = append(out, OrderHistoryEntry{
			ActorUserID: l.ActorUserID,
			Action:      string(l.Action),
			Before:      l.BeforeJSON,
			After:       l.AfterJSON,
			CreatedAt:   l.CreatedAt,
		})
	}
	return out, nil
}
