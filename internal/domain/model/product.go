package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カタログ参照のみ（CRUDは外部）
type Product struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string           `gorm:"type:varchar(255);not null;index" json:"title"`
	Description   *string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"type:numeric(12,2)" json:"original_price,omitempty"`
	Category      *string          `gorm:"type:varchar(100)" json:"category,omitempty"`
	CreatedAt     time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
