package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceAtPurchase は注文時点の単価。以降カタログから再計算しない。
type OrderItem struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         string          `gorm:"type:uuid;not null;index" json:"order_id"`
	Order           *Order          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID       string          `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity        int             `gorm:"not null;check:order_item_quantity_positive,quantity >= 1" json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_at_purchase"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 明細 + 商品サマリ
type OrderItemDetail struct {
	ID                 string          `gorm:"column:id"`
	OrderID            string          `gorm:"column:order_id"`
	ProductID          string          `gorm:"column:product_id"`
	Quantity           int             `gorm:"column:quantity"`
	PriceAtPurchase    decimal.Decimal `gorm:"column:price_at_purchase"`
	ProductTitle       string          `gorm:"column:product_title"`
	ProductDescription *string         `gorm:"column:product_description"`
}
