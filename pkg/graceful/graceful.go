package graceful

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WaitForShutdown blocks until SIGINT/SIGTERM or ctx is done. It then runs
// drain, which must release long-lived connections such as websockets, shuts
// the fiber app down within timeout and closes closers in order.
func WaitForShutdown(app *fiber.App, timeout time.Duration, ctx context.Context, drain func(), closers ...io.Closer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		zap.L().Info("Shutdown signal received", zap.String("signal", sig.String()))
	case <-ctx.Done():
		zap.L().Info("Shutdown requested", zap.Error(ctx.Err()))
	}

	if drain != nil {
		drain()
	}

	if err := app.ShutdownWithTimeout(timeout); err != nil {
		zap.L().Error("Server shutdown failed", zap.Error(err))
	}

	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			zap.L().Warn("Failed to close resource", zap.Error(err))
		}
	}
	zap.L().Info("Server stopped")
}
