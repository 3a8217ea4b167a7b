package hashing

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt молча обрезает всё, что длиннее 72 байт.
const maxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Bcrypt — хеширование паролей пользователей магазина.
type Bcrypt struct {
	cost int
}

// NewBcrypt: cost вне [MinCost, MaxCost] заменяется на DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	sum, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(sum), nil
}

// Compare не различает «не тот пароль» и «битый хеш».
func (b *Bcrypt) Compare(hash, password string) bool {
	if hash == "" || len(password) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
