package repository

import (
	"context"
	"errors"

	"orderhub/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// アカウント参照（登録・更新は外部）
type UserRepository interface {
	Exists(ctx context.Context, userID string) (bool, error)
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
}
