package usecase

import (
	"context"
	"time"

	"orderhub/internal/domain/model"
)

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// 注文イベントの送信先（commit後に呼ぶ。失敗しても注文は有効）
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order OrderOutput) error
	PublishOrderStatusChanged(ctx context.Context, order OrderOutput, previous model.OrderStatus) error
}

// 運用向けカウンタ
type OrderMetrics interface {
	OrderCreated()
	CartClearFailed()
	StatusChanged(from, to model.OrderStatus)
}

// レビュー入力の検証（validator パッケージが実装）
type ReviewValidator interface {
	ValidateRating(rating int) error
	// 長さチェック + サニタイズ。空なら nil を返す
	NormalizeComment(comment *string) (*string, error)
}

// ブローカーが詰まってもレスポンスを待たせすぎない
const defaultEventTimeout = 2 * time.Second

type nopEventPublisher struct{}

func (nopEventPublisher) PublishOrderCreated(context.Context, OrderOutput) error { return nil }
func (nopEventPublisher) PublishOrderStatusChanged(context.Context, OrderOutput, model.OrderStatus) error {
	return nil
}

type nopMetrics struct{}

func (nopMetrics) OrderCreated()                            {}
func (nopMetrics) CartClearFailed()                         {}
func (nopMetrics) StatusChanged(from, to model.OrderStatus) {}
