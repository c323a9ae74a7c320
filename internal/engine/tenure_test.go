package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memberfund-backend/internal/domain"
)

func completedPayment(memberID int32, kind domain.PaymentKind, amountCents int64, occurred time.Time) domain.PaymentRecord {
	return domain.PaymentRecord{
		MemberID:    memberID,
		AmountCents: amountCents,
		Kind:        kind,
		Status:      domain.PaymentStatusCompleted,
		OccurredAt:  occurred,
	}
}

func TestComputeLedger(t *testing.T) {
	now := date(2024, 7, 15)

	t.Run("Member in good standing through monthly payments", func(t *testing.T) {
		payments := []domain.PaymentRecord{
			completedPayment(1, domain.PaymentKindJoiningFee, 30000, date(2024, 1, 1)),
			completedPayment(1, domain.PaymentKindMonthlyFee, 2500, date(2024, 2, 1)),
			completedPayment(1, domain.PaymentKindMonthlyFee, 2500, date(2024, 7, 1)),
		}

		ledger, err := ComputeLedger(1, payments, now, 30)
		assert.NoError(t, err)
		assert.Equal(t, date(2024, 1, 1), *ledger.TenureStart)
		assert.Equal(t, 6, ledger.ContinuousTenureMonths)
		assert.Equal(t, int64(35000), ledger.TotalPaidCents)
		assert.Equal(t, date(2024, 7, 1), *ledger.LastPaymentAt)
		assert.Equal(t, 14, ledger.DaysSinceLastPayment)
		assert.False(t, ledger.IsInDefault)
		assert.Equal(t, 16, ledger.DaysUntilDefault)
	})

	// $300 joining fee on 2024-01-01, $25 monthly through 2024-06-01,
	// now = 2024-07-15, 30-day grace: six months of tenure, 44 days since
	// the last payment, in default.
	t.Run("Lapsed member is in default", func(t *testing.T) {
		payments := []domain.PaymentRecord{
			completedPayment(2, domain.PaymentKindJoiningFee, 30000, date(2024, 1, 1)),
		}
		for m := time.Month(1); m <= 6; m++ {
			payments = append(payments, completedPayment(2, domain.PaymentKindMonthlyFee, 2500, date(2024, m, 1)))
		}

		ledger, err := ComputeLedger(2, payments, now, 30)
		assert.NoError(t, err)
		assert.Equal(t, 6, ledger.ContinuousTenureMonths)
		assert.Equal(t, 44, ledger.DaysSinceLastPayment)
		assert.True(t, ledger.IsInDefault)
		assert.Equal(t, 0, ledger.DaysUntilDefault)
	})

	t.Run("Grace period boundary is inclusive", func(t *testing.T) {
		payments := []domain.PaymentRecord{
			completedPayment(3, domain.PaymentKindJoiningFee, 30000, date(2024, 6, 15)),
		}

		// Exactly 30 days since the last payment: not yet in default.
		ledger, err := ComputeLedger(3, payments, date(2024, 7, 15), 30)
		assert.NoError(t, err)
		assert.Equal(t, 30, ledger.DaysSinceLastPayment)
		assert.False(t, ledger.IsInDefault)
		assert.Equal(t, 0, ledger.DaysUntilDefault)

		// One day past the grace period: in default.
		ledger, err = ComputeLedger(3, payments, date(2024, 7, 16), 30)
		assert.NoError(t, err)
		assert.Equal(t, 31, ledger.DaysSinceLastPayment)
		assert.True(t, ledger.IsInDefault)
	})

	t.Run("No completed joining fee means no tenure", func(t *testing.T) {
		payments := []domain.PaymentRecord{
			{MemberID: 4, AmountCents: 30000, Kind: domain.PaymentKindJoiningFee, Status: domain.PaymentStatusFailed, OccurredAt: date(2024, 1, 1)},
			completedPayment(4, domain.PaymentKindMonthlyFee, 2500, date(2024, 2, 1)),
		}

		ledger, err := ComputeLedger(4, payments, now, 30)
		assert.NoError(t, err)
		assert.Nil(t, ledger.TenureStart)
		assert.Equal(t, 0, ledger.ContinuousTenureMonths)
		assert.False(t, ledger.IsInDefault)
		assert.Equal(t, int64(2500), ledger.TotalPaidCents)
	})

	t.Run("Pending and failed payments are ignored", func(t *testing.T) {
		payments := []domain.PaymentRecord{
			completedPayment(5, domain.PaymentKindJoiningFee, 30000, date(2024, 1, 1)),
			{MemberID: 5, AmountCents: 2500, Kind: domain.PaymentKindMonthlyFee, Status: domain.PaymentStatusPending, OccurredAt: date(2024, 7, 1)},
		}

		ledger, err := ComputeLedger(5, payments, now, 30)
		assert.NoError(t, err)
		assert.Equal(t, int64(30000), ledger.TotalPaidCents)
		assert.Equal(t, date(2024, 1, 1), *ledger.LastPaymentAt)
	})

	t.Run("Empty history", func(t *testing.T) {
		ledger, err := ComputeLedger(6, nil, now, 30)
		assert.NoError(t, err)
		assert.Nil(t, ledger.TenureStart)
		assert.Nil(t, ledger.LastPaymentAt)
		assert.Equal(t, int64(0), ledger.TotalPaidCents)
		assert.False(t, ledger.IsInDefault)
	})

	t.Run("Negative amount is rejected", func(t *testing.T) {
		payments := []domain.PaymentRecord{
			completedPayment(7, domain.PaymentKindJoiningFee, -100, date(2024, 1, 1)),
		}

		_, err := ComputeLedger(7, payments, now, 30)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Future-dated payment is rejected", func(t *testing.T) {
		payments := []domain.PaymentRecord{
			completedPayment(8, domain.PaymentKindJoiningFee, 30000, date(2025, 1, 1)),
		}

		_, err := ComputeLedger(8, payments, now, 30)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Negative grace period is rejected", func(t *testing.T) {
		_, err := ComputeLedger(9, nil, now, -1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Tenure months never decrease as time advances", func(t *testing.T) {
		payments := []domain.PaymentRecord{
			completedPayment(10, domain.PaymentKindJoiningFee, 30000, date(2024, 1, 31)),
		}

		prev := 0
		for _, at := range []time.Time{
			date(2024, 2, 28), date(2024, 2, 29), date(2024, 3, 1),
			date(2024, 6, 30), date(2024, 7, 31), date(2025, 1, 31),
		} {
			ledger, err := ComputeLedger(10, payments, at, 30)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, ledger.ContinuousTenureMonths, prev)
			prev = ledger.ContinuousTenureMonths
		}
	})
}
