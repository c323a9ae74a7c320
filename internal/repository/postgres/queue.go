package postgres

import (
	"context"
	"database/sql"
	"time"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/repository"
)

type queueRepository struct {
	db *sql.DB
}

func NewQueueRepository(db *sql.DB) repository.QueueRepository {
	return &queueRepository{db: db}
}

func (r *queueRepository) Join(ctx context.Context, memberID int32) (*domain.QueueEntry, error) {
	// Positions are assigned once at join time and never reused, so the
	// tie-break stays stable even if earlier members leave.
	query := `INSERT INTO queue_entries (member_id, queue_position, is_eligible, subscription_active, joined_on)
	          VALUES ($1, (SELECT COALESCE(MAX(queue_position), 0) + 1 FROM queue_entries), true, true, $2)
	          RETURNING queue_position`
	now := time.Now().Format("2006-01-02")

	entry := &domain.QueueEntry{
		MemberID:           memberID,
		IsEligible:         true,
		SubscriptionActive: true,
		JoinedOn:           now,
	}
	if err := r.db.QueryRowContext(ctx, query, memberID, now).Scan(&entry.QueuePosition); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *queueRepository) GetByMember(ctx context.Context, memberID int32) (*domain.QueueEntry, error) {
	query := `SELECT member_id, queue_position, is_eligible, subscription_active, joined_on
	          FROM queue_entries WHERE member_id = $1`

	var e domain.QueueEntry
	var joinedOn time.Time
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&e.MemberID, &e.QueuePosition, &e.IsEligible, &e.SubscriptionActive, &joinedOn,
	)
	if err != nil {
		return nil, err
	}
	e.JoinedOn = joinedOn.Format("2006-01-02")
	return &e, nil
}

func (r *queueRepository) List(ctx context.Context) ([]domain.QueueEntry, error) {
	query := `SELECT member_id, queue_position, is_eligible, subscription_active, joined_on
	          FROM queue_entries ORDER BY queue_position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.QueueEntry
	for rows.Next() {
		var e domain.QueueEntry
		var joinedOn time.Time
		if err := rows.Scan(&e.MemberID, &e.QueuePosition, &e.IsEligible, &e.SubscriptionActive, &joinedOn); err != nil {
			return nil, err
		}
		e.JoinedOn = joinedOn.Format("2006-01-02")
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *queueRepository) SetEligibility(ctx context.Context, memberID int32, eligible bool) error {
	query := `UPDATE queue_entries SET is_eligible = $1 WHERE member_id = $2`
	_, err := r.db.ExecContext(ctx, query, eligible, memberID)
	return err
}

func (r *queueRepository) SetSubscriptionActive(ctx context.Context, memberID int32, active bool) error {
	query := `UPDATE queue_entries SET subscription_active = $1 WHERE member_id = $2`
	_, err := r.db.ExecContext(ctx, query, active, memberID)
	return err
}
