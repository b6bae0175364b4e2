package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// usecase が返すエラー。handler で Status をそのまま HTTP ステータスにする。
//
//	400 入力不正・不正なステータス遷移
//	403 他人のリソース・レビュー資格なし
//	404 参照先が存在しない
//	409 一意制約違反
//	500 想定外の永続化エラー
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// DBなど想定外の失敗はログに残して 500 にする。元のエラーはクライアントに返さない。
func internalError(logger *zap.Logger, op string, err error, fields ...zap.Field) error {
	// tx 内で作った HTTPError はそのまま通す
	if he, ok := AsHTTPError(err); ok {
		return he
	}
	logger.Error(op+" failed", append(fields, zap.Error(err))...)
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}
