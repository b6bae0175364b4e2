package middleware

import (
	"net/http"

	"orderhub/internal/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JWTのsubのユーザーがまだ存在するか確認。削除済みなら401。
func AccountGuard(userRepo repository.UserRepository, logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			exists, err := userRepo.Exists(c.Request().Context(), userID)
			if err != nil {
				logger.Error("account lookup failed", zap.String("user_id", userID), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if !exists {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			return next(c)
		}
	}
}
