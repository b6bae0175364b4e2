package repository

import (
	"context"
	"errors"

	"orderhub/internal/domain/model"
	repo "orderhub/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository と CartItemRepository の両方を実装
type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得し、無ければ作成
// 同時作成は ON CONFLICT DO NOTHING で吸収して読み直す
func (r *CartGormRepository) GetOrCreateByUserID(ctx context.Context, cart model.Cart) (model.Cart, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&cart).Error
	if err != nil && !isUniqueViolation(err) {
		return model.Cart{}, err
	}

	return r.FindByUserID(ctx, cart.UserID)
}

func (r *CartGormRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ユーザーのカート明細を全削除。カートが無くても明細が空でもOK
func (r *CartGormRepository) ClearByUserID(ctx context.Context, userID string) error {
	sub := r.db.Model(&model.Cart{}).Select("id").Where("user_id = ?", userID)

	return r.db.WithContext(ctx).
		Where("cart_id IN (?)", sub).
		Delete(&model.CartItem{}).Error
}

// カート明細 + 商品を商品タイトル昇順で取得
func (r *CartGormRepository) ListDetailsByCartID(ctx context.Context, cartID string) ([]model.CartItemDetail, error) {
	var rows []model.CartItemDetail

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id, cart_items.cart_id, cart_items.product_id, cart_items.quantity, " +
			"products.title AS product_title, products.description AS product_description, products.price AS product_price").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("products.title asc").
		Scan(&rows).Error
	if err != nil {
		return []model.CartItemDetail{}, err
	}

	return rows, nil
}

// 同一商品は数量加算
// INSERT ... ON CONFLICT (cart_id, product_id) DO UPDATE で読み取りと書き込みを1文にする
func (r *CartGormRepository) AddQuantity(ctx context.Context, item model.CartItem) error {
	if item.Quantity <= 0 {
		return errors.New("invalid quantity")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
				"updated_at": gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).
		Create(&item).Error
	if isUniqueViolation(err) {
		return repo.ErrDuplicate
	}
	return err
}

func (r *CartGormRepository) FindByCartAndProduct(ctx context.Context, cartID string, productID string) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 明細の数量を上書き
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, cartItemID string, qty int) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, cartItemID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", cartItemID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
