package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `INSERT INTO members (email, phone_number, password_hash, name, role, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query,
		member.Email, member.PhoneNumber, member.PasswordHash, member.Name,
		member.Role, member.Status, now, now,
	).Scan(&member.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role, status, created_on, updated_on
	          FROM members WHERE id = $1`
	return r.scanMember(r.db.QueryRowContext(ctx, query, id))
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role, status, created_on, updated_on
	          FROM members WHERE email = $1`
	return r.scanMember(r.db.QueryRowContext(ctx, query, email))
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role, status, created_on, updated_on
	          FROM members ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMembers(rows)
}

func (r *memberRepository) ListByRole(ctx context.Context, roles []domain.Role) ([]domain.Member, error) {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role, status, created_on, updated_on
	          FROM members WHERE role = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMembers(rows)
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `UPDATE members SET email = $1, phone_number = $2, name = $3, role = $4, status = $5, updated_on = $6
	          WHERE id = $7`
	now := time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query,
		member.Email, member.PhoneNumber, member.Name, member.Role, member.Status, now, member.ID,
	)
	return err
}

func (r *memberRepository) scanMember(row *sql.Row) (*domain.Member, error) {
	var m domain.Member
	var createdOn, updatedOn time.Time
	err := row.Scan(&m.ID, &m.Email, &m.PhoneNumber, &m.PasswordHash, &m.Name, &m.Role, &m.Status, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	m.CreatedOn = createdOn.Format("2006-01-02")
	m.UpdatedOn = updatedOn.Format("2006-01-02")
	return &m, nil
}

func (r *memberRepository) scanMembers(rows *sql.Rows) ([]domain.Member, error) {
	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&m.ID, &m.Email, &m.PhoneNumber, &m.PasswordHash, &m.Name, &m.Role, &m.Status, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		m.CreatedOn = createdOn.Format("2006-01-02")
		m.UpdatedOn = updatedOn.Format("2006-01-02")
		members = append(members, m)
	}
	return members, rows.Err()
}
