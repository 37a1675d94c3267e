package security

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/authgate/auth-api/internal/core/domain"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "Secret1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "Secret1!" || !strings.HasPrefix(digest, "$2a$") {
		t.Fatalf("unexpected digest %q", digest)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil || cost != bcrypt.MinCost {
		t.Fatalf("expected cost %d, got %d (%v)", bcrypt.MinCost, cost, err)
	}

	ok, err := h.Verify(ctx, "Secret1!", digest)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = h.Verify(ctx, "secret1!", digest)
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, got ok=%v err=%v", ok, err)
	}
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 1)
	a, _ := h.Hash(context.Background(), "Secret1!")
	b, _ := h.Hash(context.Background(), "Secret1!")
	if a == b {
		t.Fatalf("expected distinct salted digests")
	}
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 1)
	if _, err := h.Verify(context.Background(), "Secret1!", "not-a-hash"); err == nil {
		t.Fatalf("expected error for malformed digest")
	}
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 1)
	_, err := h.Hash(context.Background(), "A"+strings.Repeat("a", 80))
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	if h := NewBcryptHasher(99, 1); h.cost != DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}

func TestBcryptHasher_WaitsForSlotOrContext(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 1)
	if err := h.sem.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := h.Hash(ctx, "Secret1!"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while slot is held, got %v", err)
	}
	h.sem.Release(1)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.Hash(context.Background(), "Secret1!"); err != nil {
				t.Errorf("hash: %v", err)
			}
		}()
	}
	wg.Wait()
}
