package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Passwords digests account passwords with bcrypt at a configured cost.
type Passwords struct {
	cost int
}

// NewPasswords uses bcrypt.DefaultCost when cost is zero. Costs outside
// bcrypt's range are clamped to it.
func NewPasswords(cost int) Passwords {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return Passwords{cost: cost}
}

func (p Passwords) Cost() int { return p.cost }

func (p Passwords) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Matches reports whether password produced digest. Digests made at another
// cost still verify.
func (p Passwords) Matches(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
