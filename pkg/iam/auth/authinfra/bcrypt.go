package authinfra

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordService implements auth.PasswordHasher
type BcryptPasswordService struct {
	cost int
}

func NewBcryptPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

// NewBcryptPasswordServiceWithCost is used by tests to keep hashing fast
func NewBcryptPasswordServiceWithCost(cost int) *BcryptPasswordService {
	return &BcryptPasswordService{cost: cost}
}

func (s *BcryptPasswordService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *BcryptPasswordService) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
