package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when none is configured
const DefaultBcryptCost = 10

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes)
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// NormalizeCost clamps cost into the range bcrypt accepts, using DefaultBcryptCost for zero
func NormalizeCost(cost int) int {
	switch {
	case cost == 0:
		return DefaultBcryptCost
	case cost < bcrypt.MinCost:
		return bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		return bcrypt.MaxCost
	}
	return cost
}

// HashPassword returns a salted bcrypt hash of password
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), NormalizeCost(cost))
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
