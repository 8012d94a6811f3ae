package fingerprint

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// minInterval is the minimum spacing between identify attempts against the
// fingerprint service, including retries, enforced process-wide.
const minInterval = 3 * time.Second

// globalLimiter gates every identify attempt, across every Client in the
// process, to at most one every minInterval. golang.org/x/time/rate's
// token bucket (burst 1, refill rate 1/minInterval) gives exactly the
// "acquire before every attempt" contract a literal interval timer would
// need to hand-roll.
var (
	limiterOnce sync.Once
	globalLimiter *rate.Limiter
)

func limiter() *rate.Limiter {
	limiterOnce.Do(func() {
		globalLimiter = rate.NewLimiter(rate.Every(minInterval), 1)
	})
	return globalLimiter
}

// acquire blocks until the process-wide rate limiter admits the next
// attempt, or ctx is cancelled first.
func acquire(ctx context.Context) error {
	return limiter().Wait(ctx)
}
