package member

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "memberd/internal/core/domain/common"
	"sort"
	"sync"
	"time"
)

type FakeMemberRepository struct {
	Members     []Member
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeMemberRepository() *FakeMemberRepository {
	return &FakeMemberRepository{Members: make([]Member, 0, 10)}
}

func (r *FakeMemberRepository) UpsertByEmail(ctx context.Context, input UpsertMemberInput) (m Member, err error) {
	if r.ReturnError {
		return m, fmt.Errorf("could not upsert member %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for ix, m := range r.Members {
		if m.Email == input.Email {
			r.Members[ix].Name = input.Name
			if input.DateOfBirth.IsPresent {
				r.Members[ix].DateOfBirth = input.DateOfBirth
			}
			r.Members[ix].Verified = false
			r.Members[ix].TokenHash = c.NewOptional(input.TokenHash, true)
			r.Members[ix].TokenExpiry = c.NewOptional(input.TokenExpiry, true)
			return r.Members[ix], nil
		}
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	m = Member{
		ID:          maxID + 1,
		Name:        input.Name,
		Email:       input.Email,
		DateOfBirth: input.DateOfBirth,
		TokenHash:   c.NewOptional(input.TokenHash, true),
		TokenExpiry: c.NewOptional(input.TokenExpiry, true),
		CreatedAt:   input.CreatedAt,
	}
	r.Members = append(r.Members, m)
	return m, nil
}

func (r *FakeMemberRepository) GetByEmail(ctx context.Context, email c.Email) (m Member, err error) {
	if r.ReturnError {
		return m, fmt.Errorf("could not get member by email %v", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, m := range r.Members {
		if m.Email == email {
			return m, nil
		}
	}
	return m, ErrMemberDoesNotExist
}

func (r *FakeMemberRepository) Verify(ctx context.Context, email c.Email) (m Member, err error) {
	if r.ReturnError {
		return m, fmt.Errorf("could not verify member %v", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, m := range r.Members {
		if m.Email == email {
			r.Members[ix].Verified = true
			r.Members[ix].TokenHash = c.NewOptional(TokenHash(""), false)
			r.Members[ix].TokenExpiry = c.NewOptional(time.Time{}, false)
			return r.Members[ix], nil
		}
	}
	return m, ErrMemberDoesNotExist
}

func (r *FakeMemberRepository) SetPassword(ctx context.Context, email c.Email, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for member %v", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, m := range r.Members {
		if m.Email == email {
			r.Members[ix].PasswordHash = c.NewOptional(password, true)
			return nil
		}
	}
	return ErrMemberDoesNotExist
}

func (r *FakeMemberRepository) ListVerified(ctx context.Context) ([]Member, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list verified members")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	verified := make([]Member, 0, len(r.Members))
	for _, m := range r.Members {
		if m.Verified {
			verified = append(verified, m)
		}
	}
	sort.Slice(verified, func(i, j int) bool {
		if !verified[i].CreatedAt.Equal(verified[j].CreatedAt) {
			return verified[i].CreatedAt.After(verified[j].CreatedAt)
		}
		return verified[i].ID > verified[j].ID
	})
	return verified, nil
}

type FakeVerificationTokenGenerator struct {
	Token VerificationToken
}

func NewFakeVerificationTokenGenerator(token string) *FakeVerificationTokenGenerator {
	return &FakeVerificationTokenGenerator{Token: VerificationToken(token)}
}

func (g *FakeVerificationTokenGenerator) GenerateVerificationToken() VerificationToken {
	return g.Token
}

type FakeVerificationTokenHasher struct{}

func NewFakeVerificationTokenHasher() *FakeVerificationTokenHasher {
	return &FakeVerificationTokenHasher{}
}

func (h *FakeVerificationTokenHasher) HashVerificationToken(token VerificationToken) TokenHash {
	return TokenHash("hashed:" + string(token))
}

type SentVerificationToken struct {
	Member    Member
	Token     VerificationToken
	ExpiresAt time.Time
}

type FakeVerificationTokenSender struct {
	Sent        []SentVerificationToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeVerificationTokenSender() *FakeVerificationTokenSender {
	return &FakeVerificationTokenSender{}
}

func (s *FakeVerificationTokenSender) SendVerificationToken(
	ctx context.Context,
	m Member,
	token VerificationToken,
	expiresAt time.Time,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send verification token to member %d", m.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentVerificationToken{Member: m, Token: token, ExpiresAt: expiresAt})
	return nil
}

func (s *FakeVerificationTokenSender) SentCount() int {
	return len(s.Sent)
}

func (s *FakeVerificationTokenSender) LastSent() SentVerificationToken {
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}
