package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted one-way bcrypt digest of the plaintext.
// cost tunes the work factor; values outside bcrypt's supported range
// fall back to bcrypt.DefaultCost, which keeps interactive hashing well
// under a second on commodity hardware.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// bcrypt's comparison is constant-time over the derived key.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
