package royale

import (
	"context"
	"testing"
	"time"
)

func TestGateEnforcesMinimumInterval(t *testing.T) {
	c := NewClient("", 50*time.Millisecond)

	c.last = time.Now()
	start := time.Now()
	if err := c.wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("gate returned after %v, want >= ~50ms", elapsed)
	}
}

func TestGateNoDelayOnFirstCall(t *testing.T) {
	c := NewClient("", 5*time.Second)

	start := time.Now()
	if err := c.wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first call blocked for %v, want immediate", elapsed)
	}
}

func TestGateHonorsCancellation(t *testing.T) {
	c := NewClient("", 5*time.Second)
	c.last = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := c.wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("wait under cancelled ctx: got %v, want context.DeadlineExceeded", err)
	}
}
