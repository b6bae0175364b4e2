package repository

import (
	"context"
	"errors"
	"time"

	"orderhub/internal/domain/model"
	repo "orderhub/internal/repository"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

const reviewDetailColumns = "reviews.*, users.name AS user_name, products.title AS product_title"

func (r *ReviewGormRepository) Create(ctx context.Context, review model.Review) error {
	err := r.db.WithContext(ctx).Create(&review).Error
	if isUniqueViolation(err) {
		return repo.ErrDuplicate
	}
	return err
}

func (r *ReviewGormRepository) FindByID(ctx context.Context, reviewID string) (model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).Where("id = ?", reviewID).First(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Review{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

func (r *ReviewGormRepository) FindDetailByID(ctx context.Context, reviewID string) (model.ReviewDetail, error) {
	var rows []model.ReviewDetail
	err := r.withDetails(r.db.WithContext(ctx)).
		Where("reviews.id = ?", reviewID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return model.ReviewDetail{}, err
	}
	if len(rows) == 0 {
		return model.ReviewDetail{}, repo.ErrNotFound
	}
	return rows[0], nil
}

func (r *ReviewGormRepository) Update(ctx context.Context, review model.Review) error {
	res := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReviewGormRepository) Delete(ctx context.Context, reviewID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", reviewID).Delete(&model.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReviewGormRepository) ListByProductID(ctx context.Context, productID string, page int, limit int) ([]model.ReviewDetail, int64, error) {
	return r.list(ctx, "reviews.product_id = ?", productID, page, limit)
}

func (r *ReviewGormRepository) ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.ReviewDetail, int64, error) {
	return r.list(ctx, "reviews.user_id = ?", userID, page, limit)
}

// 新しい順 + ページング
func (r *ReviewGormRepository) list(ctx context.Context, cond string, arg string, page int, limit int) ([]model.ReviewDetail, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where(cond, arg).
		Count(&total).Error; err != nil {
		return []model.ReviewDetail{}, 0, err
	}

	rows := []model.ReviewDetail{}
	offset := (page - 1) * limit
	err := r.withDetails(r.db.WithContext(ctx)).
		Where(cond, arg).
		Order("reviews.created_at desc").
		Order("reviews.id desc").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return []model.ReviewDetail{}, 0, err
	}

	return rows, total, nil
}

func (r *ReviewGormRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Table("reviews").
		Select(reviewDetailColumns).
		Joins("JOIN users ON users.id = reviews.user_id").
		Joins("JOIN products ON products.id = reviews.product_id")
}
