package utils

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenSubject returns the "sub" claim of a JWT without verifying its
// signature. The backend owns verification; the portal only shows who is
// signed in.
func TokenSubject(tokenStr string) (string, bool) {
	if tokenStr == "" {
		return "", false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
