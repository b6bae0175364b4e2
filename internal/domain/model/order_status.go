package model

import "strings"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// ParseOrderStatus は大文字小文字を無視して既知のステータスに変換する。
func ParseOrderStatus(s string) (OrderStatus, bool) {
	v := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range orderStatuses {
		if st == v {
			return st, true
		}
	}
	return "", false
}

// IsTerminal はこれ以上遷移できない状態か。
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// CanTransition は current から next への変更が許されるかを返す。
// DELIVERED からは DELIVERED 以外へ動かせない。それ以外（後戻りを含む）は許可。
func CanTransition(current, next OrderStatus) bool {
	if current.IsTerminal() {
		return next == current
	}
	return true
}
