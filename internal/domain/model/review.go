package model

import "time"

// (user_id, product_id) は一意。1ユーザー1商品につき1件。
type Review struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"not null;check:rating_range,rating BETWEEN 1 AND 5" json:"rating"`
	Comment   *string   `gorm:"type:varchar(1000)" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// レビュー + 投稿者名・商品タイトル（JOINの読み取り専用行）
type ReviewDetail struct {
	ID           string    `gorm:"column:id"`
	UserID       string    `gorm:"column:user_id"`
	ProductID    string    `gorm:"column:product_id"`
	Rating       int       `gorm:"column:rating"`
	Comment      *string   `gorm:"column:comment"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
	UserName     string    `gorm:"column:user_name"`
	ProductTitle string    `gorm:"column:product_title"`
}
