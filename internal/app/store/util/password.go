package util

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordLength  = errors.New("password must be between 8 and 100 characters")
	ErrPasswordNoDigit = errors.New("password must contain at least one digit")
)

// ValidatePassword проверяет требования к паролю в открытом виде.
// Вызывается явно перед хэшированием, никаких хуков жизненного цикла
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 100 {
		return ErrPasswordLength
	}

	for _, r := range password {
		if unicode.IsDigit(r) {
			return nil
		}
	}

	return ErrPasswordNoDigit
}

// HashPassword хэширует пароль с использованием bcrypt
// Вызывается ровно один раз на каждое новое значение пароля
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword проверяет, соответствует ли пароль хэшу
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
