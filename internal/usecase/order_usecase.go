package usecase

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"orderhub/internal/domain/model"
	repo "orderhub/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderUsecaseDeps struct {
	Tx         repo.TransactionManager
	Orders     repo.OrderRepository
	OrderItems repo.OrderItemRepository
	Products   repo.ProductRepository
	Users      repo.UserRepository
	Carts      repo.CartRepository
	IDs        IDGenerator
	Clock      Clock
	Events     OrderEventPublisher
	Metrics    OrderMetrics
	Logger     *zap.Logger

	// commit 後のイベント送信1回あたりの上限。0 なら defaultEventTimeout
	EventTimeout time.Duration
}

type OrderUsecase struct {
	tx           repo.TransactionManager
	orders       repo.OrderRepository
	products     repo.ProductRepository
	users        repo.UserRepository
	carts        repo.CartRepository
	views        orderViews
	ids          IDGenerator
	clock        Clock
	events       OrderEventPublisher
	eventTimeout time.Duration
	metrics      OrderMetrics
	logger       *zap.Logger
}

func NewOrderUsecase(d OrderUsecaseDeps) *OrderUsecase {
	d = d.withDefaults()
	return &OrderUsecase{
		tx:           d.Tx,
		orders:       d.Orders,
		products:     d.Products,
		users:        d.Users,
		carts:        d.Carts,
		views:        orderViews{orderItems: d.OrderItems, users: d.Users, logger: d.Logger},
		ids:          d.IDs,
		clock:        d.Clock,
		events:       d.Events,
		eventTimeout: d.EventTimeout,
		metrics:      d.Metrics,
		logger:       d.Logger,
	}
}

func (d OrderUsecaseDeps) withDefaults() OrderUsecaseDeps {
	if d.Events == nil {
		d.Events = nopEventPublisher{}
	}
	if d.EventTimeout <= 0 {
		d.EventTimeout = defaultEventTimeout
	}
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

type OrderLineInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	UserID string
	Items  []OrderLineInput
}

// CreateOrder は全明細を検証してから注文と明細を1つのtxで作る。
// commit後のカートクリアは失敗してもエラーにしない。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order must contain at least one item")
	}

	user, err := u.users.FindByID(ctx, in.UserID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return OrderOutput{}, internalError(u.logger, "order.create.find_user", err, zap.String("user_id", in.UserID))
	}

	orderID := u.ids.NewID()
	now := u.clock.Now()

	//書き込み前に全明細を検証（価格スナップショット + 合計）
	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(in.Items))
	details := make([]model.OrderItemDetail, 0, len(in.Items))
	for _, line := range in.Items {
		p, err := u.products.FindByID(ctx, line.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "product not found: "+line.ProductID)
		}
		if err != nil {
			return OrderOutput{}, internalError(u.logger, "order.create.find_product", err,
				zap.String("product_id", line.ProductID))
		}
		if line.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0 for product "+line.ProductID)
		}

		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		item := model.OrderItem{
			ID:              u.ids.NewID(),
			OrderID:         orderID,
			ProductID:       p.ID,
			Quantity:        line.Quantity,
			PriceAtPurchase: p.Price,
			CreatedAt:       now,
		}
		items = append(items, item)
		details = append(details, model.OrderItemDetail{
			ID:                 item.ID,
			OrderID:            orderID,
			ProductID:          p.ID,
			Quantity:           item.Quantity,
			PriceAtPurchase:    item.PriceAtPurchase,
			ProductTitle:       p.Title,
			ProductDescription: p.Description,
		})
	}

	order := model.Order{
		ID:          orderID,
		UserID:      user.ID,
		Status:      model.OrderStatusPending,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	//注文 + 明細はトランザクション
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().Create(ctx, order); err != nil {
			return err
		}
		return r.OrderItems().CreateBulk(ctx, orderID, items)
	})
	if err != nil {
		return OrderOutput{}, internalError(u.logger, "order.create", err,
			zap.String("user_id", user.ID), zap.String("order_id", orderID))
	}
	u.metrics.OrderCreated()

	sort.SliceStable(details, func(i, j int) bool { return details[i].ProductTitle < details[j].ProductTitle })
	out := toOrderOutput(order, toUserSummary(user), details)

	// ここから先は commit 済み。リクエストがキャンセルされても実行する
	afterCommit := context.WithoutCancel(ctx)
	u.clearCartBestEffort(afterCommit, user.ID, orderID)

	pubCtx, cancel := context.WithTimeout(afterCommit, u.eventTimeout)
	defer cancel()
	if err := u.events.PublishOrderCreated(pubCtx, out); err != nil {
		u.logger.Warn("failed to publish order created event",
			zap.String("order_id", orderID), zap.Error(err))
	}

	return out, nil
}

// カートクリアは注文txの外。失敗はログ + メトリクスだけ
func (u *OrderUsecase) clearCartBestEffort(ctx context.Context, userID string, orderID string) {
	if err := u.carts.ClearByUserID(ctx, userID); err != nil {
		u.metrics.CartClearFailed()
		u.logger.Error("failed to clear cart after order creation",
			zap.String("user_id", userID),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

// FindOrdersForUser はユーザーの注文を新しい順で返す。
func (u *OrderUsecase) FindOrdersForUser(ctx context.Context, userID string) ([]OrderOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return []OrderOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return []OrderOutput{}, internalError(u.logger, "order.list.find_user", err, zap.String("user_id", userID))
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return []OrderOutput{}, internalError(u.logger, "order.list", err, zap.String("user_id", userID))
	}

	return u.views.build(ctx, orders, toUserSummary(user))
}

// FindOrderByID は requestingUserID が指定されていて持ち主でなければ 403。
func (u *OrderUsecase) FindOrderByID(ctx context.Context, orderID string, requestingUserID string) (OrderOutput, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, internalError(u.logger, "order.find", err, zap.String("order_id", orderID))
	}

	if requestingUserID != "" && o.UserID != requestingUserID {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "access to this order is denied")
	}

	return u.views.load(ctx, o)
}
