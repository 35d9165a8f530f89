package verification

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"memberd/internal/core/domain/member"
)

const tokenByteCount = 32

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateVerificationToken returns a hex-encoded token with 256 bits of
// entropy. The token is a bearer secret, so it is always drawn from
// crypto/rand.
func (g *Generator) GenerateVerificationToken() member.VerificationToken {
	b := make([]byte, tokenByteCount)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return member.VerificationToken(hex.EncodeToString(b))
}

type SHA256Hasher struct{}

func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

func (h *SHA256Hasher) HashVerificationToken(token member.VerificationToken) member.TokenHash {
	sum := sha256.Sum256([]byte(token))
	return member.TokenHash(hex.EncodeToString(sum[:]))
}
