package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"mcjavaproto/packets"
	"mcjavaproto/proto"
)

func echoHandler(ctx context.Context, pkt proto.Packet) error {
	return nil
}

func slowHandler(ctx context.Context, pkt proto.Packet) error {
	time.Sleep(200 * time.Millisecond)
	return nil
}

func TestLogging(t *testing.T) {
	handler := LoggingMiddleware()(echoHandler)
	if err := handler(context.Background(), packets.PingRequest{Payload: 1}); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
}

func TestTimeoutPass(t *testing.T) {
	handler := TimeOutMiddleware(500 * time.Millisecond)(echoHandler)
	if err := handler(context.Background(), packets.PingRequest{Payload: 1}); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
}

func TestTimeoutExceeded(t *testing.T) {
	handler := TimeOutMiddleware(50 * time.Millisecond)(slowHandler)
	err := handler(context.Background(), packets.PingRequest{Payload: 1})
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestRateLimit(t *testing.T) {
	// rate=1 per second, burst=2: first 2 pass immediately, 3rd is rejected.
	handler := RateLimitMiddleware(1, 2)(echoHandler)
	pkt := packets.PingRequest{Payload: 1}

	for i := 0; i < 2; i++ {
		if err := handler(context.Background(), pkt); err != nil {
			t.Fatalf("request %d should pass, got error: %v", i, err)
		}
	}

	if err := handler(context.Background(), pkt); err == nil {
		t.Fatal("3rd request should be rate limited")
	}
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	handler := RetryMiddleware(3, time.Millisecond)(func(ctx context.Context, pkt proto.Packet) error {
		calls++
		return errors.New("validation failed")
	})
	if err := handler(context.Background(), packets.PingRequest{Payload: 1}); err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 call for a non-retryable error, got %d", calls)
	}
}

func TestRetrySucceedsAfterTransientError(t *testing.T) {
	calls := 0
	handler := RetryMiddleware(3, time.Millisecond)(func(ctx context.Context, pkt proto.Packet) error {
		calls++
		if calls < 2 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err := handler(context.Background(), packets.PingRequest{Payload: 1}); err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestChain(t *testing.T) {
	chained := Chain(LoggingMiddleware(), TimeOutMiddleware(500*time.Millisecond))
	handler := chained(echoHandler)
	if err := handler(context.Background(), packets.PingRequest{Payload: 1}); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
}
