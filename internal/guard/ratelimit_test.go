package guard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := rl.Check(ctx, "acct-1")
		assert.True(t, res.Allowed, "attempt %d", i+1)
	}

	res := rl.Check(ctx, "acct-1")
	assert.False(t, res.Allowed)
	assert.Contains(t, res.Reason, "rate limit exceeded")
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	ctx := context.Background()

	assert.True(t, rl.Check(ctx, "acct-1").Allowed)
	assert.False(t, rl.Check(ctx, "acct-1").Allowed)
	assert.True(t, rl.Check(ctx, "acct-2").Allowed)
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	assert.True(t, rl.Check(ctx, "acct-1").Allowed)
	assert.False(t, rl.Check(ctx, "acct-1").Allowed)

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Check(ctx, "acct-1").Allowed)
}

func TestRateLimiterConcurrent(t *testing.T) {
	rl := NewRateLimiter(50, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Check(ctx, "acct-1").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
