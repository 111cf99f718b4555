// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/payrelay/internal/shared/logger"
)

// SafeGo runs fn in a goroutine. A panic is logged with its stack trace and
// reported on the returned channel instead of crashing the process; the
// channel is closed when fn returns.
func SafeGo(log logger.Interface, name string, fn func()) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				done <- fmt.Errorf("goroutine %s panicked: %v", name, r)
			}
		}()
		fn()
	}()
	return done
}
