// Package goroutine runs fire-and-forget work off the request path.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/lumastory/lumastory/internal/shared/logger"
)

// Detached runs fn in a new goroutine with its own deadline, independent of
// any request context. A returned error is logged as a warning and a panic is
// logged with its stack; neither reaches the caller.
func Detached(log logger.Interface, name string, timeout time.Duration, fn func(ctx context.Context) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("background task panicked",
					"task", name,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			log.Warnw("background task failed", "task", name, "error", err)
		}
	}()
}
