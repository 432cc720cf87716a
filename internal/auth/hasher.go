package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts the hashing algorithm so services and tests
// don't depend on bcrypt directly.
type PasswordHasher interface {
	// Hash produces a salted, self-contained digest of the password.
	// The salt is randomized per call, so two hashes of the same
	// password differ.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the digest. A
	// malformed digest counts as a mismatch, not an error.
	Verify(password, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt-backed hasher. A cost outside the
// valid bcrypt range falls back to the library default.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *bcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
