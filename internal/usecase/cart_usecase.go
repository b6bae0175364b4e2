package usecase

import (
	"context"
	"errors"
	"net/http"

	"orderhub/internal/domain/model"
	repo "orderhub/internal/repository"

	"go.uber.org/zap"
)

// CartUsecase は /cart の業務ロジックです。
// 1ユーザー1カート。変更系はすべて読み直したカートを返す。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	userRepo     repo.UserRepository
	ids          IDGenerator
	logger       *zap.Logger
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	ids IDGenerator,
	logger *zap.Logger,
) *CartUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		ids:          ids,
		logger:       logger,
	}
}

// POST /cart/items, PATCH /cart/items の入力
type CartItemInput struct {
	ProductID string
	Quantity  int
}

// GetOrCreateCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetOrCreateCart(ctx context.Context, userID string) (CartOutput, error) {
	cart, err := u.ensureCart(ctx, userID)
	if err != nil {
		return CartOutput{}, err
	}
	return u.buildCartOutput(ctx, cart)
}

// AddItem はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, userID string, in CartItemInput) (CartOutput, error) {
	if in.Quantity <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
	}

	cart, err := u.ensureCart(ctx, userID)
	if err != nil {
		return CartOutput{}, err
	}

	// 商品チェック
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return CartOutput{}, internalError(u.logger, "cart.add_item.find_product", err,
			zap.String("product_id", in.ProductID))
	}

	// 同時追加でも1行にまとまる（upsert）
	err = u.cartItemRepo.AddQuantity(ctx, model.CartItem{
		ID:        u.ids.NewID(),
		CartID:    cart.ID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return CartOutput{}, NewHTTPError(http.StatusConflict, "cart item conflict, retry the request")
	}
	if err != nil {
		return CartOutput{}, internalError(u.logger, "cart.add_item", err,
			zap.String("user_id", userID), zap.String("product_id", in.ProductID))
	}

	return u.buildCartOutput(ctx, cart)
}

// SetItemQuantity は数量を上書き。0以下なら明細を削除する（エラーにしない）。
func (u *CartUsecase) SetItemQuantity(ctx context.Context, userID string, in CartItemInput) (CartOutput, error) {
	cart, item, err := u.findItem(ctx, userID, in.ProductID)
	if err != nil {
		return CartOutput{}, err
	}

	if in.Quantity <= 0 {
		err = u.cartItemRepo.DeleteByID(ctx, item.ID)
	} else {
		err = u.cartItemRepo.UpdateQuantity(ctx, item.ID, in.Quantity)
	}
	if errors.Is(err, repo.ErrNotFound) {
		// 読んだ直後に別リクエストで消された
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "item not found in cart")
	}
	if err != nil {
		return CartOutput{}, internalError(u.logger, "cart.set_item_quantity", err,
			zap.String("user_id", userID), zap.String("product_id", in.ProductID))
	}

	return u.buildCartOutput(ctx, cart)
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, userID string, productID string) (CartOutput, error) {
	cart, item, err := u.findItem(ctx, userID, productID)
	if err != nil {
		return CartOutput{}, err
	}

	err = u.cartItemRepo.DeleteByID(ctx, item.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "item not found in cart")
	}
	if err != nil {
		return CartOutput{}, internalError(u.logger, "cart.remove_item", err,
			zap.String("user_id", userID), zap.String("product_id", productID))
	}

	return u.buildCartOutput(ctx, cart)
}

// Clear は明細を全削除。空でも成功。
func (u *CartUsecase) Clear(ctx context.Context, userID string) (CartOutput, error) {
	cart, err := u.ensureCart(ctx, userID)
	if err != nil {
		return CartOutput{}, err
	}

	if err := u.cartRepo.ClearByUserID(ctx, userID); err != nil {
		return CartOutput{}, internalError(u.logger, "cart.clear", err, zap.String("user_id", userID))
	}

	return u.buildCartOutput(ctx, cart)
}

// ユーザー確認 → カート取得 or 作成
func (u *CartUsecase) ensureCart(ctx context.Context, userID string) (model.Cart, error) {
	ok, err := u.userRepo.Exists(ctx, userID)
	if err != nil {
		return model.Cart{}, internalError(u.logger, "cart.find_user", err, zap.String("user_id", userID))
	}
	if !ok {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, model.Cart{
		ID:     u.ids.NewID(),
		UserID: userID,
	})
	if err != nil {
		return model.Cart{}, internalError(u.logger, "cart.get_or_create", err, zap.String("user_id", userID))
	}
	return cart, nil
}

func (u *CartUsecase) findItem(ctx context.Context, userID string, productID string) (model.Cart, model.CartItem, error) {
	cart, err := u.ensureCart(ctx, userID)
	if err != nil {
		return model.Cart{}, model.CartItem{}, err
	}

	item, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "item not found in cart")
	}
	if err != nil {
		return model.Cart{}, model.CartItem{}, internalError(u.logger, "cart.find_item", err,
			zap.String("cart_id", cart.ID), zap.String("product_id", productID))
	}
	return cart, item, nil
}

// 明細（商品タイトル昇順）を読み直して返す
func (u *CartUsecase) buildCartOutput(ctx context.Context, cart model.Cart) (CartOutput, error) {
	rows, err := u.cartItemRepo.ListDetailsByCartID(ctx, cart.ID)
	if err != nil {
		return CartOutput{}, internalError(u.logger, "cart.list_items", err, zap.String("cart_id", cart.ID))
	}
	return toCartOutput(cart, rows), nil
}
