package utils

import "golang.org/x/crypto/bcrypt"

// Staff accounts are long-lived, so the cost sits above the bcrypt default.
const bcryptCost = 12

// HashPassword returns the bcrypt hash of a staff password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches the stored bcrypt hash.
func ComparePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
