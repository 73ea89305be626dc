package api

import (
	"github.com/golang-jwt/jwt/v5"
)

type JWTServiceI interface {
	// Signs a token for identity bound to sessionID
	GenerateToken(identity, sessionID string) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims carries the identity; RegisteredClaims.ID holds the session id,
// so ending the session revokes the token.
type JWTClaims struct {
	jwt.RegisteredClaims
	Identity string `json:"identity"`
}
