package postgres

import (
	"context"
	"database/sql"
	"time"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.PaymentRecord) error {
	query := `INSERT INTO payment_records (member_id, amount_cents, kind, status, occurred_at, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query,
		payment.MemberID, payment.AmountCents, payment.Kind, payment.Status, payment.OccurredAt, now,
	).Scan(&payment.ID)
}

func (r *paymentRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.PaymentRecord, error) {
	query := `SELECT id, member_id, amount_cents, kind, status, occurred_at, created_on
	          FROM payment_records WHERE member_id = $1 ORDER BY occurred_at`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		var createdOn time.Time
		if err := rows.Scan(&p.ID, &p.MemberID, &p.AmountCents, &p.Kind, &p.Status, &p.OccurredAt, &createdOn); err != nil {
			return nil, err
		}
		p.CreatedOn = createdOn.Format("2006-01-02")
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) TotalCompletedRevenue(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM payment_records WHERE status = 'COMPLETED'`
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	return total, err
}
