// Package auth contains the stateless cryptographic primitives of the
// identity core: HS256 bearer-token issuance/verification and bcrypt
// password hashing. Nothing in this package touches the store.
package auth

import (
	"errors"
	"time"

	"github.com/feas-project/feas-server/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// FallbackTokenTTL applies when GenerateToken is called without an
// explicit positive TTL.
const FallbackTokenTTL = 15 * time.Minute

// Claims carries the token payload: the registered claims (Subject holds
// the user's email, ExpiresAt the absolute expiry) plus the numeric
// user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"id"`
}

// GenerateToken issues a compact HS256-signed token for the given
// subject (email) and user id. If ttl is not positive, FallbackTokenTTL
// is used. The expiry claim is always present.
func GenerateToken(subject string, userID int64, secretKey []byte, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = FallbackTokenTTL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the embedded
// claims. Only HS256 is accepted; a token signed with any other method
// is rejected outright, so the algorithm is never negotiated with the
// client. Expired tokens map to common.ErrTokenExpired, every other
// failure to common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
