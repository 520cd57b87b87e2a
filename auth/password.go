package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is used when the service is constructed with cost 0.
const DefaultBcryptCost = bcrypt.DefaultCost

// hashPassword returns a bcrypt hash of plain at the given cost.
func hashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// verifyPassword reports whether plain matches the stored bcrypt hash.
func verifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
