package utils

import (
	"errors" // Error values
	"time"   // Token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenIssuer is stamped into every session token
const TokenIssuer = "tetconnect"

// TokenTTL is how long a session token stays valid
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for tokens that fail validation
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by a session token
type Claims struct {
	UserID               uint `json:"user_id"` // Authenticated user
	jwt.RegisteredClaims      // Standard JWT claims
}

// GenerateJWT issues a session token for userID
func GenerateJWT(userID uint, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,                           // Issuer claim
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)), // Expiry
			IssuedAt:  jwt.NewNumericDate(now),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a session token; only HS256 is accepted
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return nil, err // Expired, malformed or wrong signature
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
