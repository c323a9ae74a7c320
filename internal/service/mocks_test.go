package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"memberfund-backend/internal/domain"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) ListByRole(ctx context.Context, roles []domain.Role) ([]domain.Member, error) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.PaymentRecord) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}
func (m *MockPaymentRepo) TotalCompletedRevenue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockQueueRepo
type MockQueueRepo struct {
	mock.Mock
}

func (m *MockQueueRepo) Join(ctx context.Context, memberID int32) (*domain.QueueEntry, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueueEntry), args.Error(1)
}
func (m *MockQueueRepo) GetByMember(ctx context.Context, memberID int32) (*domain.QueueEntry, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueueEntry), args.Error(1)
}
func (m *MockQueueRepo) List(ctx context.Context) ([]domain.QueueEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.QueueEntry), args.Error(1)
}
func (m *MockQueueRepo) SetEligibility(ctx context.Context, memberID int32, eligible bool) error {
	args := m.Called(ctx, memberID, eligible)
	return args.Error(0)
}
func (m *MockQueueRepo) SetSubscriptionActive(ctx context.Context, memberID int32, active bool) error {
	args := m.Called(ctx, memberID, active)
	return args.Error(0)
}

// MockProposalRepo
type MockProposalRepo struct {
	mock.Mock
}

func (m *MockProposalRepo) Create(ctx context.Context, proposal *domain.PayoutProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}
func (m *MockProposalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayoutProposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutProposal), args.Error(1)
}

// MockWorkflowRepo
type MockWorkflowRepo struct {
	mock.Mock
}

func (m *MockWorkflowRepo) Create(ctx context.Context, wf *domain.ApprovalWorkflow) error {
	args := m.Called(ctx, wf)
	return args.Error(0)
}
func (m *MockWorkflowRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ApprovalWorkflow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalWorkflow), args.Error(1)
}
func (m *MockWorkflowRepo) UpdateStatus(ctx context.Context, wf *domain.ApprovalWorkflow) error {
	args := m.Called(ctx, wf)
	return args.Error(0)
}
func (m *MockWorkflowRepo) AddDecision(ctx context.Context, workflowID uuid.UUID, decision domain.ApprovalDecision) error {
	args := m.Called(ctx, workflowID, decision)
	return args.Error(0)
}
func (m *MockWorkflowRepo) ListByStatus(ctx context.Context, status domain.WorkflowStatus) ([]domain.ApprovalWorkflow, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.ApprovalWorkflow), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, memberID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, memberID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, memberID int32) error {
	args := m.Called(ctx, id, memberID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDefaultWarning(ctx context.Context, email, name string, daysUntilDefault int) error {
	args := m.Called(ctx, email, name, daysUntilDefault)
	return args.Error(0)
}
func (m *MockEmailService) SendDefaultNotice(ctx context.Context, email, name string, daysSinceLastPayment int) error {
	args := m.Called(ctx, email, name, daysSinceLastPayment)
	return args.Error(0)
}
func (m *MockEmailService) SendProposalNotification(ctx context.Context, email, name string, amountCents int64, requiredApprovals int) error {
	args := m.Called(ctx, email, name, amountCents, requiredApprovals)
	return args.Error(0)
}
func (m *MockEmailService) SendWorkflowResolvedNotification(ctx context.Context, email, name string, status string, amountCents int64) error {
	args := m.Called(ctx, email, name, status, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendFundReadyNotification(ctx context.Context, email, name string, totalRevenueCents int64, potentialWinners int) error {
	args := m.Called(ctx, email, name, totalRevenueCents, potentialWinners)
	return args.Error(0)
}

// MockPushService
type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) SendToApprovers(ctx context.Context, title, body string, data map[string]string) error {
	args := m.Called(ctx, title, body, data)
	return args.Error(0)
}
func (m *MockPushService) SendToMember(ctx context.Context, memberID int32, title, body string, data map[string]string) error {
	args := m.Called(ctx, memberID, title, body, data)
	return args.Error(0)
}
