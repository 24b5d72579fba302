// Package middleware implements the onion-model chain BX-D-mini-RPC used
// for its RPC handlers, generalized here to wrap outbound packet sends:
// rate limiting, logging, timeouts, and retry around a connection's
// WritePacket call, without WritePacket itself knowing any of that exists.
//
// Onion model execution order:
//
//	Chain(A, B, C)(send)  →  A(B(C(send)))
//
//	Send:     A.before → B.before → C.before → send
//	Return:   send → C.after → B.after → A.after
//
// Each middleware can:
//   - Do pre-processing (before calling next)
//   - Call next(ctx, pkt) to pass to the next layer
//   - Do post-processing (after next returns)
//   - Short-circuit by returning early without calling next (e.g., rate limiting)
package middleware

import (
	"context"

	"mcjavaproto/proto"
)

// HandlerFunc sends one packet and reports whether it went out.
type HandlerFunc func(ctx context.Context, pkt proto.Packet) error

// Middleware takes a handler and returns a new handler that wraps it.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes multiple middlewares into a single middleware, building
// right to left so the first middleware listed is the outermost layer.
//
// Example:
//
//	chain := Chain(LoggingMiddleware(), RateLimitMiddleware(10, 20), TimeOutMiddleware(time.Second))
//	send := chain(func(ctx context.Context, pkt proto.Packet) error { return conn.WritePacket(pkt) })
//	// Execution: Logging → RateLimit → Timeout → conn.WritePacket → Timeout → RateLimit → Logging
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
