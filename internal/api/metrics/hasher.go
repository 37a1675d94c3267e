package metrics

import (
	"context"
	"time"

	"github.com/authgate/auth-api/internal/core/ports"
)

type timedHasher struct {
	next ports.PasswordHasher
}

// InstrumentHasher records PasswordHashDuration around every call to h.
func InstrumentHasher(h ports.PasswordHasher) ports.PasswordHasher {
	return timedHasher{next: h}
}

func (t timedHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	defer observe("hash", time.Now())
	return t.next.Hash(ctx, plaintext)
}

func (t timedHasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	defer observe("verify", time.Now())
	return t.next.Verify(ctx, plaintext, digest)
}

func observe(op string, start time.Time) {
	PasswordHashDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
