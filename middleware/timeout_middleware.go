package middleware

import (
	"context"
	"fmt"
	"time"

	"mcjavaproto/proto"
)

// TimeOutMiddleware enforces a maximum duration for each outbound send.
// If the next handler doesn't complete within the timeout, it returns an
// error immediately.
//
// Note: the handler goroutine is NOT cancelled — it continues running in
// the background. The timeout only controls when the caller gives up
// waiting. For true cancellation, next must check ctx.Done() internally.
func TimeOutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, pkt proto.Packet) error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan error, 1)
			go func() {
				done <- next(ctx, pkt)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return fmt.Errorf("send of opcode 0x%02X timed out after %s", pkt.Opcode(), timeout)
			}
		}
	}
}
