package middleware

import (
	"context"
	"log"
	"strings"
	"time"

	"mcjavaproto/proto"
)

// RetryMiddleware retries a send up to maxRetries times with exponential
// backoff, but only for errors that look transient (timeout or connection
// refused) — a validation or encoding failure is retried uselessly, so
// those return immediately.
func RetryMiddleware(maxRetries int, baseDelay time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, pkt proto.Packet) error {
			err := next(ctx, pkt)
			for i := 0; i < maxRetries; i++ {
				if err == nil {
					return nil
				}
				if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "connection refused") {
					log.Printf("retry attempt %d for opcode 0x%02X due to error: %v", i+1, pkt.Opcode(), err)
					time.Sleep(baseDelay * time.Duration(1<<i))
					err = next(ctx, pkt)
				} else {
					return err
				}
			}
			return err
		}
	}
}
