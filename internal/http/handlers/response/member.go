package response

import (
	"memberd/internal/core/domain/member"
	"time"
)

type Member struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Dob       *string   `json:"dob"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Member) FromDomainMember(dm member.Member) {
	m.Name = string(dm.Name)
	m.Email = string(dm.Email)
	if dm.DateOfBirth.IsPresent {
		dob := string(dm.DateOfBirth.Value)
		m.Dob = &dob
	}
	m.CreatedAt = dm.CreatedAt
}
