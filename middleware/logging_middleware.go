package middleware

import (
	"context"
	"log"
	"time"

	"mcjavaproto/proto"
)

// LoggingMiddleware records the opcode, phase, and duration of every
// outbound packet, plus any send error.
//
// Example output:
//
//	opcode=0x03 phase=PLAY direction=SERVERBOUND duration=42µs
func LoggingMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, pkt proto.Packet) error {
			start := time.Now()
			err := next(ctx, pkt)
			log.Printf("opcode=0x%02X phase=%s direction=%s duration=%s",
				pkt.Opcode(), pkt.Phase(), pkt.Direction(), time.Since(start))
			if err != nil {
				log.Printf("send error: %v", err)
			}
			return err
		}
	}
}
