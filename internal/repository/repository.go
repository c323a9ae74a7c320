package repository

import (
	"context"

	"github.com/google/uuid"

	"memberfund-backend/internal/domain"
)

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	ListByRole(ctx context.Context, roles []domain.Role) ([]domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.PaymentRecord) error
	ListByMember(ctx context.Context, memberID int32) ([]domain.PaymentRecord, error)
	// TotalCompletedRevenue sums all COMPLETED payments across members,
	// the aggregate the fund snapshot is built from.
	TotalCompletedRevenue(ctx context.Context) (int64, error)
}

type QueueRepository interface {
	// Join inserts a queue entry with the next monotonically increasing
	// queue position.
	Join(ctx context.Context, memberID int32) (*domain.QueueEntry, error)
	GetByMember(ctx context.Context, memberID int32) (*domain.QueueEntry, error)
	List(ctx context.Context) ([]domain.QueueEntry, error)
	SetEligibility(ctx context.Context, memberID int32, eligible bool) error
	SetSubscriptionActive(ctx context.Context, memberID int32, active bool) error
}

type ProposalRepository interface {
	Create(ctx context.Context, proposal *domain.PayoutProposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PayoutProposal, error)
}

type WorkflowRepository interface {
	Create(ctx context.Context, wf *domain.ApprovalWorkflow) error
	// GetByID loads a workflow together with its recorded decisions.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ApprovalWorkflow, error)
	UpdateStatus(ctx context.Context, wf *domain.ApprovalWorkflow) error
	AddDecision(ctx context.Context, workflowID uuid.UUID, decision domain.ApprovalDecision) error
	ListByStatus(ctx context.Context, status domain.WorkflowStatus) ([]domain.ApprovalWorkflow, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, memberID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, memberID int32) error
}
