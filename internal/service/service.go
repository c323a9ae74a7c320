package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/engine"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type MemberService interface {
	GetMember(ctx context.Context, id int32) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
	RecordPayment(ctx context.Context, memberID int32, amountCents int64, kind domain.PaymentKind, status domain.PaymentStatus, occurredAt time.Time) (*domain.PaymentRecord, error)
	JoinQueue(ctx context.Context, memberID int32) (*domain.QueueEntry, error)
}

type TenureService interface {
	GetMemberLedger(ctx context.Context, memberID int32) (*engine.TenureLedger, error)
}

type PayoutService interface {
	GetRankedQueue(ctx context.Context) ([]engine.RankedEntry, error)
	GetMemberRank(ctx context.Context, memberID int32) (*engine.RankedEntry, error)
	GetFundStatus(ctx context.Context) (engine.FundStatus, error)
	CreateProposal(ctx context.Context, amountCents int64, createdBy int32) (*domain.PayoutProposal, *domain.ApprovalWorkflow, error)
	RecordDecision(ctx context.Context, workflowID uuid.UUID, approverID int32, decision domain.Decision) (*domain.ApprovalWorkflow, error)
	GetWorkflow(ctx context.Context, workflowID uuid.UUID) (*domain.ApprovalWorkflow, error)
	ListPendingWorkflows(ctx context.Context) ([]domain.ApprovalWorkflow, error)
	ExpireStaleWorkflows(ctx context.Context, now time.Time) (int, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, memberID, notificationID int32) error
}

type EmailService interface {
	SendDefaultWarning(ctx context.Context, email, name string, daysUntilDefault int) error
	SendDefaultNotice(ctx context.Context, email, name string, daysSinceLastPayment int) error
	SendProposalNotification(ctx context.Context, email, name string, amountCents int64, requiredApprovals int) error
	SendWorkflowResolvedNotification(ctx context.Context, email, name string, status string, amountCents int64) error
	SendFundReadyNotification(ctx context.Context, email, name string, totalRevenueCents int64, potentialWinners int) error
}

// PushService sends FCM push messages. Approvers subscribe to a shared
// topic; members subscribe to their own.
type PushService interface {
	SendToApprovers(ctx context.Context, title, body string, data map[string]string) error
	SendToMember(ctx context.Context, memberID int32, title, body string, data map[string]string) error
}

// GovernanceParams carries the configured governance rules into the
// services. All values originate in configuration (see config.Governance).
type GovernanceParams struct {
	GracePeriodDays           int
	FundThresholdCents        int64
	LaunchDate                time.Time
	RequiredMonthsAfterLaunch int
	RewardPerWinnerCents      int64
	Policy                    engine.ApprovalPolicy
	WorkflowMaxAgeDays        int
	DefaultWarningDays        int
}
