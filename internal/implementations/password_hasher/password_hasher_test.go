package passwordhasher

import (
	"memberd/internal/core/domain/member"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	SECRET   = "test-secret"
	PASSWORD = "test-password"
)

// Minimal cost keeps the test fast.
var hasher = NewBcrypt(SECRET, 4)

func TestHashAndValidate(t *testing.T) {
	hash, err := hasher.HashPassword(member.RawPassword(PASSWORD))

	assert.Nil(t, err)
	assert.NotEqual(t, member.PasswordHash(PASSWORD), hash)
	assert.True(t, hasher.ValidatePassword(member.RawPassword(PASSWORD), hash))
}

func TestValidateWrongPassword(t *testing.T) {
	hash, err := hasher.HashPassword(member.RawPassword(PASSWORD))

	assert.Nil(t, err)
	assert.False(t, hasher.ValidatePassword(member.RawPassword("wrong-password"), hash))
}

func TestValidateWrongSecret(t *testing.T) {
	hash, err := hasher.HashPassword(member.RawPassword(PASSWORD))
	assert.Nil(t, err)

	otherHasher := NewBcrypt("another-secret", 4)
	assert.False(t, otherHasher.ValidatePassword(member.RawPassword(PASSWORD), hash))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := hasher.HashPassword(member.RawPassword(PASSWORD))
	assert.Nil(t, err)
	second, err := hasher.HashPassword(member.RawPassword(PASSWORD))
	assert.Nil(t, err)

	assert.NotEqual(t, first, second)
}
