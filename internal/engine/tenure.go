package engine

import (
	"fmt"
	"time"

	"memberfund-backend/internal/domain"
)

// TenureLedger is the derived tenure and default standing of one member,
// recomputed on demand from the member's full payment history. It is never
// persisted by the engine.
type TenureLedger struct {
	MemberID               int32      `json:"member_id"`
	TenureStart            *time.Time `json:"tenure_start,omitempty"`
	ContinuousTenureMonths int        `json:"continuous_tenure_months"`
	TotalPaidCents         int64      `json:"total_paid_cents"`
	LastPaymentAt          *time.Time `json:"last_payment_at,omitempty"`
	DaysSinceLastPayment   int        `json:"days_since_last_payment"`
	IsInDefault            bool       `json:"is_in_default"`
	DaysUntilDefault       int        `json:"days_until_default"`
}

// ComputeLedger derives a member's tenure ledger from their payment
// records. Tenure starts at the earliest COMPLETED joining fee; without
// one the member has no tenure and cannot be ranked. The grace period is
// inclusive: a member whose last payment is exactly gracePeriodDays old is
// not yet in default.
//
// Malformed records (negative amount, future-dated) fail with
// ErrInvalidInput rather than being coerced, since a silently floored
// amount would corrupt the tenure totals.
func ComputeLedger(memberID int32, payments []domain.PaymentRecord, now time.Time, gracePeriodDays int) (*TenureLedger, error) {
	if gracePeriodDays < 0 {
		return nil, fmt.Errorf("%w: grace period days must be >= 0, got %d", ErrInvalidInput, gracePeriodDays)
	}

	for _, p := range payments {
		if p.AmountCents < 0 {
			return nil, fmt.Errorf("%w: payment %d for member %d has negative amount %d", ErrInvalidInput, p.ID, memberID, p.AmountCents)
		}
		if p.OccurredAt.After(now) {
			return nil, fmt.Errorf("%w: payment %d for member %d is future-dated (%s)", ErrInvalidInput, p.ID, memberID, p.OccurredAt.Format(time.RFC3339))
		}
	}

	ledger := &TenureLedger{MemberID: memberID}

	for _, p := range payments {
		if p.Status != domain.PaymentStatusCompleted {
			continue
		}

		ledger.TotalPaidCents += p.AmountCents

		occurred := p.OccurredAt
		if p.Kind == domain.PaymentKindJoiningFee {
			if ledger.TenureStart == nil || occurred.Before(*ledger.TenureStart) {
				start := occurred
				ledger.TenureStart = &start
			}
		}
		if ledger.LastPaymentAt == nil || occurred.After(*ledger.LastPaymentAt) {
			last := occurred
			ledger.LastPaymentAt = &last
		}
	}

	if ledger.TenureStart == nil {
		// No completed joining fee: no tenure, not queue-eligible, and
		// default standing does not apply.
		return ledger, nil
	}

	ledger.ContinuousTenureMonths = MonthsBetween(*ledger.TenureStart, now)
	ledger.DaysSinceLastPayment = WholeDaysBetween(*ledger.LastPaymentAt, now)
	ledger.IsInDefault = ledger.DaysSinceLastPayment > gracePeriodDays
	if !ledger.IsInDefault {
		ledger.DaysUntilDefault = gracePeriodDays - ledger.DaysSinceLastPayment
		if ledger.DaysUntilDefault < 0 {
			ledger.DaysUntilDefault = 0
		}
	}

	return ledger, nil
}
