package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"orderhub/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// New はミドルウェアとルートを設定した echo を返す
func New(logger *zap.Logger, h Handlers, auth ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover(logger))
	e.Use(middleware.RequestLogger(logger))

	RegisterRoutes(e, h, auth...)
	return e
}

// Start は ctx が終わるまで待ってから graceful shutdown する
func Start(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
