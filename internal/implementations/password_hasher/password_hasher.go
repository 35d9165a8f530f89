package passwordhasher

import (
	"memberd/internal/core/domain/member"

	"golang.org/x/crypto/bcrypt"
)

type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) HashPassword(password member.RawPassword) (hash member.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(string(password)+h.secret), h.cost)
	if err != nil {
		return hash, err
	}
	return member.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password member.RawPassword, hash member.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(string(password)+h.secret))
	return err == nil
}
