package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt hash from the plain text password.
// bcrypt embeds a fresh random salt per call, so hashing the same password
// twice yields different digests.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
