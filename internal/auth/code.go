package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCode creates a bcrypt hash of a confirmation code so the code is never
// stored as plaintext.
func HashCode(code string) (string, error) {
	// default cost keeps token exchange fast enough for an interactive flow
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyCode checks a submitted confirmation code against the stored hash.
func VerifyCode(hashedCode, providedCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(providedCode))
}

// DummyCompareHash is a valid bcrypt hash of a random value. Comparing against
// it when the user record is missing keeps token exchange timing uniform.
const DummyCompareHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
