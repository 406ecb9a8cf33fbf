package progress

import (
	"context"

	"resolvo/internal/logger"

	"go.uber.org/zap"
)

// Run executes fn on a background goroutine under a context derived from
// ctx, blocking the caller until fn returns. Cancelling ctx cancels fn; Run
// still waits for fn to observe the cancellation before returning ctx's
// error, so fn never outlives the call.
func Run(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Log.Debug("task started", zap.String("title", title))

	errCh := make(chan error, 1)
	go func() {
		errCh <- fn(runCtx)
	}()

	select {
	case err := <-errCh:
		logger.Log.Debug("task finished",
			zap.String("title", title),
			zap.Bool("ok", err == nil))
		return err
	case <-ctx.Done():
		cancel()
		<-errCh
		logger.Log.Debug("task cancelled", zap.String("title", title))
		return ctx.Err()
	}
}
