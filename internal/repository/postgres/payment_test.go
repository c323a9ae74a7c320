package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/repository/postgres"
)

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p := &domain.PaymentRecord{
			MemberID:    1,
			AmountCents: 10_000,
			Kind:        domain.PaymentKindMonthlyFee,
			Status:      domain.PaymentStatusCompleted,
			OccurredAt:  time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		}

		mock.ExpectQuery("INSERT INTO payment_records").
			WithArgs(p.MemberID, p.AmountCents, p.Kind, p.Status, p.OccurredAt, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), p.ID)
	})
}

func TestPaymentRepository_ListByMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		occurred := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"id", "member_id", "amount_cents", "kind", "status", "occurred_at", "created_on"}).
			AddRow(1, 1, 50_000, "JOINING_FEE", "COMPLETED", occurred, time.Now()).
			AddRow(2, 1, 10_000, "MONTHLY_FEE", "COMPLETED", occurred.AddDate(0, 1, 0), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM payment_records WHERE member_id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		payments, err := repo.ListByMember(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, payments, 2)
		assert.Equal(t, domain.PaymentKindJoiningFee, payments[0].Kind)
		assert.Equal(t, int64(10_000), payments[1].AmountCents)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payment_records WHERE member_id = \\$1").
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "amount_cents", "kind", "status", "occurred_at", "created_on"}))

		payments, err := repo.ListByMember(ctx, 9)
		assert.NoError(t, err)
		assert.Empty(t, payments)
	})
}

func TestPaymentRepository_TotalCompletedRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount_cents\\), 0\\) FROM payment_records").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(25_000_000))

		total, err := repo.TotalCompletedRevenue(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(25_000_000), total)
	})
}
