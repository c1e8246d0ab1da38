package auth

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt with a fixed cost factor. The cost is the
// deliberate throttle against brute-force attempts; it is set once from
// config and never changes for the process lifetime.
type Hasher struct {
	cost int
}

// NewHasher clamps out-of-range costs to the bcrypt default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted one-way digest of the raw password.
func (h *Hasher) Hash(raw string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether raw matches the stored digest. Comparison is
// delegated to bcrypt, which is constant-time with respect to mismatch.
func (h *Hasher) Verify(raw, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(raw)) == nil
}
