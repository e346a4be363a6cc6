package utils

import (
	"errors"  // Error values
	"strconv" // Subject formatting
	"time"    // Time for token expiration

	"billing_system/internal/domain" // Importing domain models

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrUnexpectedSigningMethod is returned for tokens not signed with HMAC
var ErrUnexpectedSigningMethod = errors.New("unexpected signing method")

// Claims is the signed session claim set
type Claims struct {
	UserID               uint   `json:"id"`    // User ID
	Email                string `json:"email"` // User email
	Name                 string `json:"name"`  // User display name
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a session token for the given user
func GenerateJWT(user domain.User, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()       // Issue time
	expires := now.Add(ttl) // Expiry time
	claims := Claims{
		UserID: user.ID,    // Copied from the user at sign-in time
		Email:  user.Email, // Copied from the user at sign-in time
		Name:   user.Name,  // Copied from the user at sign-in time
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10), // Subject is the user ID
			ExpiresAt: jwt.NewNumericDate(expires),             // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),                 // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(secret))          // Sign the token with the secret
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseJWT parses and validates a session token, checking signature and expiry
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		// Only HMAC-signed tokens are accepted
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithExpirationRequired())
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
