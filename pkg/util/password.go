package util

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12

	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	MaxPasswordBytes = 72
)

var (
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrPasswordAllNumeric = errors.New("password is entirely numeric")
)

// CheckPassword applies the registration password rules
func CheckPassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return ErrPasswordAllNumeric
}

// HashPassword hashes a plain text password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks if a plain text password matches a hashed password
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
