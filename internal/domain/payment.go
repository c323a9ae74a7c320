package domain

import "time"

type PaymentKind string

const (
	PaymentKindJoiningFee PaymentKind = "JOINING_FEE"
	PaymentKindMonthlyFee PaymentKind = "MONTHLY_FEE"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusPending   PaymentStatus = "PENDING"
)

// PaymentRecord is an immutable fact written by the payment processor.
// Financial computations read COMPLETED records only.
type PaymentRecord struct {
	ID          int32         `json:"id"`
	MemberID    int32         `json:"member_id"`
	AmountCents int64         `json:"amount_cents"`
	Kind        PaymentKind   `json:"kind"`
	Status      PaymentStatus `json:"status"`
	OccurredAt  time.Time     `json:"occurred_at"`
	CreatedOn   string        `json:"created_on"`
}
