package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"mcjavaproto/proto"
)

// RateLimitMiddleware throttles outbound packets with a token bucket:
// tokens refill at r per second up to burst, and each send consumes one.
// Meant for the anti-flood case spec.md's transport layer leaves to the
// driver — bounding how fast a client can emit serverbound chat/interact
// packets.
//
// CRITICAL: the limiter is created in the OUTER closure (once per
// middleware creation), NOT in the inner handler function. If created
// per-send, every send would get a fresh full bucket, defeating the
// entire purpose of rate limiting.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, pkt proto.Packet) error {
			if !limiter.Allow() {
				return fmt.Errorf("%w: outbound rate limit exceeded for opcode 0x%02X",
					proto.ErrValidationFailed, pkt.Opcode())
			}
			return next(ctx, pkt)
		}
	}
}
