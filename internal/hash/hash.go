package hash

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for stored credentials.
const Cost = 12

type Bcrypt struct {
	Cost int
}

func New() Bcrypt {
	return Bcrypt{Cost: Cost}
}

func (b Bcrypt) HashPassword(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = Cost
	}
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hashbytes), nil
}

// CheckPassword reports whether password matches hash. A malformed hash never matches.
func (b Bcrypt) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func HashPassword(password string) (string, error) {
	return New().HashPassword(password)
}

func CheckPassword(hash, password string) bool {
	return New().CheckPassword(hash, password)
}
