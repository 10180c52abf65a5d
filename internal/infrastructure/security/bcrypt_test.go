package security

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := h.Compare(hash, "s3cret"); err != nil {
		t.Errorf("compare with correct password: %v", err)
	}
	if err := h.Compare(hash, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("compare with wrong password = %v, want ErrInvalidCredentials", err)
	}
}

func TestBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(0)
	if h.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", h.cost, bcrypt.DefaultCost)
	}

	h = NewBcryptHasher(12)
	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, _ := bcrypt.Cost([]byte(hash))
	if cost != 12 {
		t.Errorf("stored cost = %d, want 12", cost)
	}
}
