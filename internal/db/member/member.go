package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "memberd/internal/core/domain/common"
	e "memberd/internal/core/domain/errors"
	"memberd/internal/core/domain/member"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const memberColumns = "id, name, email, dob, verified, password_hash, token_hash, token_expiry, created_at"

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxMemberRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxMemberRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxMemberRepository{db: db}
}

// UpsertByEmail inserts a new member or re-initializes an existing one in a
// single statement. On conflict the id and created_at are kept, the stored
// dob wins when the new one is absent, and the record goes back to pending.
func (r *PgxMemberRepository) UpsertByEmail(
	ctx context.Context,
	input member.UpsertMemberInput,
) (m member.Member, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO member (name, email, dob, verified, token_hash, token_expiry, created_at)
		 VALUES ($1, $2, $3, FALSE, $4, $5, $6)
		 ON CONFLICT (email) DO UPDATE
		 SET name = EXCLUDED.name,
		     dob = COALESCE(EXCLUDED.dob, member.dob),
		     verified = FALSE,
		     token_hash = EXCLUDED.token_hash,
		     token_expiry = EXCLUDED.token_expiry
		 RETURNING `+memberColumns,
		string(input.Name),
		string(input.Email),
		encodeDateOfBirth(input.DateOfBirth),
		string(input.TokenHash),
		input.TokenExpiry,
		input.CreatedAt,
	)
	m, err = scanMember(row)
	if err != nil {
		return m, err
	}
	if err = m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

func (r *PgxMemberRepository) GetByEmail(ctx context.Context, email c.Email) (m member.Member, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+memberColumns+` FROM member WHERE email = $1`,
		string(email),
	)
	m, err = scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, member.ErrMemberDoesNotExist
	}
	if err != nil {
		return m, err
	}
	if err = m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

func (r *PgxMemberRepository) Verify(ctx context.Context, email c.Email) (m member.Member, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE member
		 SET verified = TRUE, token_hash = NULL, token_expiry = NULL
		 WHERE email = $1
		 RETURNING `+memberColumns,
		string(email),
	)
	m, err = scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, member.ErrMemberDoesNotExist
	}
	if err != nil {
		return m, err
	}
	if err = m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

func (r *PgxMemberRepository) SetPassword(
	ctx context.Context,
	email c.Email,
	password member.PasswordHash,
) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE member SET password_hash = $1 WHERE email = $2`,
		string(password),
		string(email),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return member.ErrMemberDoesNotExist
	}
	return nil
}

func (r *PgxMemberRepository) ListVerified(ctx context.Context) ([]member.Member, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+memberColumns+`
		 FROM member
		 WHERE verified
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]member.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func scanMember(row pgx.Row) (m member.Member, err error) {
	var (
		id           int64
		name         string
		email        string
		dob          sql.NullString
		verified     bool
		passwordHash sql.NullString
		tokenHash    sql.NullString
		tokenExpiry  sql.NullTime
		createdAt    time.Time
	)
	err = row.Scan(&id, &name, &email, &dob, &verified, &passwordHash, &tokenHash, &tokenExpiry, &createdAt)
	if err != nil {
		return m, err
	}
	return member.Member{
		ID:           member.ID(id),
		Name:         member.Name(name),
		Email:        c.Email(email),
		DateOfBirth:  c.NewOptional(member.DateOfBirth(dob.String), dob.Valid),
		Verified:     verified,
		PasswordHash: c.NewOptional(member.PasswordHash(passwordHash.String), passwordHash.Valid),
		TokenHash:    c.NewOptional(member.TokenHash(tokenHash.String), tokenHash.Valid),
		TokenExpiry:  c.NewOptional(tokenExpiry.Time, tokenExpiry.Valid),
		CreatedAt:    createdAt,
	}, nil
}

func encodeDateOfBirth(dob c.Optional[member.DateOfBirth]) sql.NullString {
	return sql.NullString{String: string(dob.Value), Valid: dob.IsPresent}
}
