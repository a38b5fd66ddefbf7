package auth

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/alumnihub/internal/pkg/apperrors"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

// BcryptCost is the hashing cost; tests lower it to bcrypt.MinCost
var BcryptCost = 12

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidatePassword enforces the length bounds bcrypt can handle
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperrors.NewBadRequestError(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if len(password) > 72 {
		return apperrors.NewBadRequestError("password must be at most 72 bytes")
	}
	return nil
}
