package usecase

import (
	"context"
	"errors"
	"net/http"

	"orderhub/internal/domain/model"
	repo "orderhub/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultReviewPage  = 1
	defaultReviewLimit = 10
	maxReviewLimit     = 100
)

type ReviewUsecase struct {
	reviews   repo.ReviewRepository
	orders    repo.OrderRepository
	users     repo.UserRepository
	products  repo.ProductRepository
	validator ReviewValidator
	ids       IDGenerator
	clock     Clock
	logger    *zap.Logger
}

func NewReviewUsecase(
	reviews repo.ReviewRepository,
	orders repo.OrderRepository,
	users repo.UserRepository,
	products repo.ProductRepository,
	validator ReviewValidator,
	ids IDGenerator,
	clock Clock,
	logger *zap.Logger,
) *ReviewUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewUsecase{
		reviews:   reviews,
		orders:    orders,
		users:     users,
		products:  products,
		validator: validator,
		ids:       ids,
		clock:     clock,
		logger:    logger,
	}
}

type CreateReviewInput struct {
	ProductID string
	Rating    int
	Comment   *string
}

// nil の項目は変更しない。CommentSet は {"comment": null} を受けたとき true（コメント削除）
type UpdateReviewInput struct {
	Rating     *int
	Comment    *string
	CommentSet bool
}

func (in UpdateReviewInput) hasComment() bool {
	return in.CommentSet || in.Comment != nil
}

// CheckEligibility は DELIVERED の注文にその商品が含まれているかを見る。
// どの注文かは問わない。1件あれば OK。
func (u *ReviewUsecase) CheckEligibility(ctx context.Context, userID string, productID string) error {
	ok, err := u.users.Exists(ctx, userID)
	if err != nil {
		return internalError(u.logger, "review.eligibility.find_user", err, zap.String("user_id", userID))
	}
	if !ok {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return internalError(u.logger, "review.eligibility.find_product", err, zap.String("product_id", productID))
	}

	n, err := u.orders.CountDeliveredWithProduct(ctx, userID, productID)
	if err != nil {
		return internalError(u.logger, "review.eligibility.count", err,
			zap.String("user_id", userID), zap.String("product_id", productID))
	}
	if n == 0 {
		return NewHTTPError(http.StatusForbidden, "you can only review products from delivered orders")
	}
	return nil
}

func (u *ReviewUsecase) CreateReview(ctx context.Context, userID string, in CreateReviewInput) (ReviewOutput, error) {
	if err := u.validator.ValidateRating(in.Rating); err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	comment, err := u.validator.NormalizeComment(in.Comment)
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := u.CheckEligibility(ctx, userID, in.ProductID); err != nil {
		return ReviewOutput{}, err
	}

	now := u.clock.Now()
	review := model.Review{
		ID:        u.ids.NewID(),
		UserID:    userID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 資格チェックと insert の間に別リクエストが作った場合も一意制約で弾く
	err = u.reviews.Create(ctx, review)
	if errors.Is(err, repo.ErrDuplicate) {
		return ReviewOutput{}, NewHTTPError(http.StatusConflict, "you have already reviewed this product")
	}
	if err != nil {
		return ReviewOutput{}, internalError(u.logger, "review.create", err,
			zap.String("user_id", userID), zap.String("product_id", in.ProductID))
	}

	return u.GetReview(ctx, review.ID)
}

func (u *ReviewUsecase) GetReview(ctx context.Context, reviewID string) (ReviewOutput, error) {
	d, err := u.reviews.FindDetailByID(ctx, reviewID)
	if errors.Is(err, repo.ErrNotFound) {
		return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "review not found")
	}
	if err != nil {
		return ReviewOutput{}, internalError(u.logger, "review.find", err, zap.String("review_id", reviewID))
	}
	return toReviewOutput(d), nil
}

// 商品のレビュー一覧（新しい順）
func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID string, page int, limit int) (ReviewPage, error) {
	page, limit, err := normalizePaging(page, limit)
	if err != nil {
		return ReviewPage{}, err
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ReviewPage{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return ReviewPage{}, internalError(u.logger, "review.list.find_product", err, zap.String("product_id", productID))
	}

	rows, total, err := u.reviews.ListByProductID(ctx, productID, page, limit)
	if err != nil {
		return ReviewPage{}, internalError(u.logger, "review.list", err, zap.String("product_id", productID))
	}
	return toReviewPage(rows, total, page, limit), nil
}

// 自分のレビュー一覧（新しい順）
func (u *ReviewUsecase) ListMine(ctx context.Context, userID string, page int, limit int) (ReviewPage, error) {
	page, limit, err := normalizePaging(page, limit)
	if err != nil {
		return ReviewPage{}, err
	}

	rows, total, err := u.reviews.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return ReviewPage{}, internalError(u.logger, "review.list_mine", err, zap.String("user_id", userID))
	}
	return toReviewPage(rows, total, page, limit), nil
}

// UpdateReview は部分更新。何も指定しなければそのまま返す。
func (u *ReviewUsecase) UpdateReview(ctx context.Context, userID string, reviewID string, in UpdateReviewInput) (ReviewOutput, error) {
	review, err := u.findOwned(ctx, userID, reviewID)
	if err != nil {
		return ReviewOutput{}, err
	}

	if in.Rating == nil && !in.hasComment() {
		return u.GetReview(ctx, reviewID)
	}

	if in.Rating != nil {
		if err := u.validator.ValidateRating(*in.Rating); err != nil {
			return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		review.Rating = *in.Rating
	}
	if in.hasComment() {
		comment, err := u.validator.NormalizeComment(in.Comment)
		if err != nil {
			return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		review.Comment = comment
	}

	if err := u.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "review not found")
		}
		return ReviewOutput{}, internalError(u.logger, "review.update", err, zap.String("review_id", reviewID))
	}

	return u.GetReview(ctx, reviewID)
}

func (u *ReviewUsecase) DeleteReview(ctx context.Context, userID string, reviewID string) error {
	if _, err := u.findOwned(ctx, userID, reviewID); err != nil {
		return err
	}

	if err := u.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "review not found")
		}
		return internalError(u.logger, "review.delete", err, zap.String("review_id", reviewID))
	}
	return nil
}

// 存在しなければ404、他人のものなら403
func (u *ReviewUsecase) findOwned(ctx context.Context, userID string, reviewID string) (model.Review, error) {
	review, err := u.reviews.FindByID(ctx, reviewID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "review not found")
	}
	if err != nil {
		return model.Review{}, internalError(u.logger, "review.find", err, zap.String("review_id", reviewID))
	}
	if review.UserID != userID {
		return model.Review{}, NewHTTPError(http.StatusForbidden, "you can only modify your own reviews")
	}
	return review, nil
}

// 0 は未指定扱い
func normalizePaging(page int, limit int) (int, int, error) {
	if page == 0 {
		page = defaultReviewPage
	}
	if limit == 0 {
		limit = defaultReviewLimit
	}
	if page < 1 {
		return 0, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > maxReviewLimit {
		return 0, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	return page, limit, nil
}

func toReviewPage(rows []model.ReviewDetail, total int64, page int, limit int) ReviewPage {
	reviews := make([]ReviewOutput, 0, len(rows))
	for _, r := range rows {
		reviews = append(reviews, toReviewOutput(r))
	}
	return ReviewPage{
		Reviews:     reviews,
		Total:       total,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}
}
