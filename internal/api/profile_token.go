package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueProfileToken signs an HS256 bearer token scoped to one profile.
func IssueProfileToken(secretKey []byte, profileID uint, ttl time.Duration, now time.Time) (string, error) {
	if len(secretKey) == 0 {
		return "", errors.New("secret key is required")
	}
	if profileID == 0 {
		return "", errors.New("profile id is required")
	}
	if ttl <= 0 {
		ttl = DefaultProfileTokenTTL
	}

	claims := profileClaims{
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(profileID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}
