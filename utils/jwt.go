package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenExpiry extracts the expiry time from a JWT without verifying its
// signature. The backend owns token validity; the client only inspects the
// "exp" claim so it can treat a stale session as logged-out before wasting
// a network call.
func TokenExpiry(tokenString string) (time.Time, error) {
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("token does not contain a valid 'exp' claim")
	}
	return time.Unix(int64(exp), 0), nil
}

// TokenExpired reports whether a stored token has passed its expiry claim.
// Tokens without a parseable expiry are treated as still valid; the backend
// will reject them if they are not.
func TokenExpired(tokenString string) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return false
	}
	return time.Now().After(exp)
}
