package goroutine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lumastory/lumastory/internal/application/testutil"
)

func TestDetached(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(ctx context.Context) error
		level string
	}{
		{
			name:  "error is logged as warning",
			fn:    func(context.Context) error { return errors.New("smtp down") },
			level: "WARN",
		},
		{
			name:  "panic is recovered",
			fn:    func(context.Context) error { panic("boom") },
			level: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := testutil.NewMockLogger()

			Detached(log, "test", time.Second, tt.fn)

			assert.Eventually(t, func() bool { return log.HasLevel(tt.level) }, time.Second, 10*time.Millisecond)
		})
	}
}

func TestDetached_SetsDeadline(t *testing.T) {
	got := make(chan bool, 1)

	Detached(testutil.NewMockLogger(), "test", time.Second, func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		got <- ok
		return nil
	})

	select {
	case ok := <-got:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}
