package fixture

import (
	"golang.org/x/crypto/bcrypt"
)

// Account is the single seeded portal user.
type Account struct {
	Email        string
	PasswordHash string
}

// NewAccount creates an account with a bcrypt-hashed password.
func NewAccount(email, password string) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Account{
		Email:        email,
		PasswordHash: string(hash),
	}, nil
}

// CheckPassword verifies the given password against the stored hash.
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
