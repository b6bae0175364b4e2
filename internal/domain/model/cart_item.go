package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細
// (cart_id, product_id) は一意。数量変更は既存行を更新する。
type CartItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	Cart      *Cart     `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product;index" json:"product_id"`
	Quantity  int       `gorm:"not null;check:cart_item_quantity_positive,quantity >= 1" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 明細 + 商品情報（products JOIN の読み取り専用行）
type CartItemDetail struct {
	ID                 string          `gorm:"column:id"`
	CartID             string          `gorm:"column:cart_id"`
	ProductID          string          `gorm:"column:product_id"`
	Quantity           int             `gorm:"column:quantity"`
	ProductTitle       string          `gorm:"column:product_title"`
	ProductDescription *string         `gorm:"column:product_description"`
	ProductPrice       decimal.Decimal `gorm:"column:product_price"`
}
