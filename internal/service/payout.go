package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/engine"
	"memberfund-backend/internal/logger"
	"memberfund-backend/internal/repository"
)

// ErrFundNotReady is returned when a proposal is drafted before both
// payout gates are open.
var ErrFundNotReady = errors.New("payout fund is not ready for disbursement")

type payoutService struct {
	memberRepo       repository.MemberRepository
	paymentRepo      repository.PaymentRepository
	queueRepo        repository.QueueRepository
	proposalRepo     repository.ProposalRepository
	workflowRepo     repository.WorkflowRepository
	notificationRepo repository.NotificationRepository
	emailSvc         EmailService
	pushSvc          PushService
	params           GovernanceParams

	// Decisions against the same workflow must be serialized so a late
	// rejection cannot race past an approval count that already reached
	// the required total. Different workflows stay independent.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewPayoutService(
	memberRepo repository.MemberRepository,
	paymentRepo repository.PaymentRepository,
	queueRepo repository.QueueRepository,
	proposalRepo repository.ProposalRepository,
	workflowRepo repository.WorkflowRepository,
	notificationRepo repository.NotificationRepository,
	emailSvc EmailService,
	pushSvc PushService,
	params GovernanceParams,
) PayoutService {
	return &payoutService{
		memberRepo:       memberRepo,
		paymentRepo:      paymentRepo,
		queueRepo:        queueRepo,
		proposalRepo:     proposalRepo,
		workflowRepo:     workflowRepo,
		notificationRepo: notificationRepo,
		emailSvc:         emailSvc,
		pushSvc:          pushSvc,
		params:           params,
		locks:            make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *payoutService) workflowLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// computeLedgers derives a fresh tenure ledger for every queue member
// from the payment snapshot.
func (s *payoutService) computeLedgers(ctx context.Context, entries []domain.QueueEntry, now time.Time) (map[int32]*engine.TenureLedger, error) {
	ledgers := make(map[int32]*engine.TenureLedger, len(entries))
	for _, e := range entries {
		payments, err := s.paymentRepo.ListByMember(ctx, e.MemberID)
		if err != nil {
			return nil, err
		}
		ledger, err := engine.ComputeLedger(e.MemberID, payments, now, s.params.GracePeriodDays)
		if err != nil {
			return nil, fmt.Errorf("computing ledger for member %d: %w", e.MemberID, err)
		}
		ledgers[e.MemberID] = ledger
	}
	return ledgers, nil
}

func (s *payoutService) rankedQueue(ctx context.Context, now time.Time) ([]engine.RankedEntry, error) {
	entries, err := s.queueRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ledgers, err := s.computeLedgers(ctx, entries, now)
	if err != nil {
		return nil, err
	}
	return engine.Rank(entries, ledgers), nil
}

func (s *payoutService) GetRankedQueue(ctx context.Context) ([]engine.RankedEntry, error) {
	logger.EnterMethod("payoutService.GetRankedQueue")

	ranked, err := s.rankedQueue(ctx, time.Now().UTC())
	if err != nil {
		logger.ExitMethodWithError("payoutService.GetRankedQueue", err)
		return nil, err
	}

	logger.ExitMethod("payoutService.GetRankedQueue", "count", len(ranked))
	return ranked, nil
}

func (s *payoutService) GetMemberRank(ctx context.Context, memberID int32) (*engine.RankedEntry, error) {
	ranked, err := s.rankedQueue(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	for i := range ranked {
		if ranked[i].MemberID == memberID {
			return &ranked[i], nil
		}
	}
	return nil, fmt.Errorf("%w: member %d is not in the payout ranking", engine.ErrNotEligible, memberID)
}

func (s *payoutService) GetFundStatus(ctx context.Context) (engine.FundStatus, error) {
	logger.EnterMethod("payoutService.GetFundStatus")

	now := time.Now().UTC()
	revenue, err := s.paymentRepo.TotalCompletedRevenue(ctx)
	if err != nil {
		logger.ExitMethodWithError("payoutService.GetFundStatus", err)
		return engine.FundStatus{}, err
	}
	ranked, err := s.rankedQueue(ctx, now)
	if err != nil {
		logger.ExitMethodWithError("payoutService.GetFundStatus", err)
		return engine.FundStatus{}, err
	}

	status := engine.EvaluateFund(engine.FundParams{
		TotalRevenueCents:         revenue,
		Now:                       now,
		LaunchDate:                s.params.LaunchDate,
		FundThresholdCents:        s.params.FundThresholdCents,
		RequiredMonthsAfterLaunch: s.params.RequiredMonthsAfterLaunch,
		RewardPerWinnerCents:      s.params.RewardPerWinnerCents,
		EligibleMemberCount:       len(ranked),
	})

	logger.ExitMethod("payoutService.GetFundStatus",
		"payoutReady", status.PayoutReady, "potentialWinners", status.PotentialWinners)
	return status, nil
}

func (s *payoutService) CreateProposal(ctx context.Context, amountCents int64, createdBy int32) (*domain.PayoutProposal, *domain.ApprovalWorkflow, error) {
	logger.EnterMethod("payoutService.CreateProposal", "amountCents", amountCents, "createdBy", createdBy)

	if amountCents <= 0 {
		err := fmt.Errorf("%w: proposal amount must be > 0, got %d", engine.ErrInvalidInput, amountCents)
		logger.ExitMethodWithError("payoutService.CreateProposal", err)
		return nil, nil, err
	}

	now := time.Now().UTC()
	status, err := s.GetFundStatus(ctx)
	if err != nil {
		logger.ExitMethodWithError("payoutService.CreateProposal", err)
		return nil, nil, err
	}
	if !status.PayoutReady {
		logger.ExitMethodWithError("payoutService.CreateProposal", ErrFundNotReady,
			"fundReady", status.FundReady, "timeReady", status.TimeReady)
		return nil, nil, ErrFundNotReady
	}
	if status.PotentialWinners == 0 {
		logger.ExitMethodWithError("payoutService.CreateProposal", ErrFundNotReady, "reason", "no fundable winners")
		return nil, nil, ErrFundNotReady
	}

	ranked, err := s.rankedQueue(ctx, now)
	if err != nil {
		logger.ExitMethodWithError("payoutService.CreateProposal", err)
		return nil, nil, err
	}

	winners := status.PotentialWinners
	if winners > len(ranked) {
		winners = len(ranked)
	}
	candidates := make([]int32, 0, winners)
	for _, entry := range ranked[:winners] {
		candidates = append(candidates, entry.MemberID)
	}

	proposal := &domain.PayoutProposal{
		ID:                 uuid.New(),
		AmountCents:        amountCents,
		CandidateMemberIDs: candidates,
		FundSnapshot: domain.FundSnapshot{
			TotalRevenueCents: status.TotalRevenueCents,
			EvaluatedAt:       status.EvaluatedAt,
		},
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		logger.ExitMethodWithError("payoutService.CreateProposal", err)
		return nil, nil, err
	}

	wf := engine.NewApprovalWorkflow(proposal, s.params.Policy, now)
	if err := s.workflowRepo.Create(ctx, wf); err != nil {
		logger.ExitMethodWithError("payoutService.CreateProposal", err)
		return nil, nil, err
	}

	s.notifyApprovers(ctx, wf)

	logger.ExitMethod("payoutService.CreateProposal",
		"proposalID", proposal.ID, "workflowID", wf.ID, "requiredApprovals", wf.RequiredApprovals)
	return proposal, wf, nil
}

func (s *payoutService) notifyApprovers(ctx context.Context, wf *domain.ApprovalWorkflow) {
	approvers, err := s.memberRepo.ListByRole(ctx, s.params.Policy.AllowedRoles)
	if err != nil {
		logger.Error("Failed to list approvers for notification", "workflowID", wf.ID, "error", err)
		return
	}

	for _, approver := range approvers {
		notification := &domain.Notification{
			MemberID: approver.ID,
			Title:    "Payout Approval Required",
			Message:  fmt.Sprintf("A payout of $%.2f awaits your decision (%d approvals required)", float64(wf.AmountCents)/100, wf.RequiredApprovals),
			Attributes: map[string]string{
				"topic":        "payout_approval_required",
				"workflow_id":  wf.ID.String(),
				"amount_cents": fmt.Sprintf("%d", wf.AmountCents),
			},
		}
		_ = s.notificationRepo.Create(ctx, notification)
		_ = s.emailSvc.SendProposalNotification(ctx, approver.Email, approver.Name, wf.AmountCents, wf.RequiredApprovals)
	}

	if s.pushSvc != nil {
		_ = s.pushSvc.SendToApprovers(ctx, "Payout Approval Required",
			fmt.Sprintf("A payout of $%.2f awaits review", float64(wf.AmountCents)/100),
			map[string]string{"workflow_id": wf.ID.String()})
	}
}

func (s *payoutService) RecordDecision(ctx context.Context, workflowID uuid.UUID, approverID int32, decision domain.Decision) (*domain.ApprovalWorkflow, error) {
	logger.EnterMethod("payoutService.RecordDecision", "workflowID", workflowID, "approverID", approverID, "decision", decision)

	lock := s.workflowLock(workflowID)
	lock.Lock()
	defer lock.Unlock()

	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		logger.ExitMethodWithError("payoutService.RecordDecision", err, "workflowID", workflowID)
		return nil, err
	}

	approver, err := s.memberRepo.GetByID(ctx, approverID)
	if err != nil {
		logger.ExitMethodWithError("payoutService.RecordDecision", err, "approverID", approverID)
		return nil, err
	}

	now := time.Now().UTC()
	if err := engine.RecordDecision(wf, approverID, approver.Role, decision, now, s.params.Policy); err != nil {
		logger.ExitMethodWithError("payoutService.RecordDecision", err, "workflowID", workflowID)
		return nil, err
	}

	recorded := wf.Approvals[len(wf.Approvals)-1]
	if err := s.workflowRepo.AddDecision(ctx, workflowID, recorded); err != nil {
		logger.ExitMethodWithError("payoutService.RecordDecision", err, "workflowID", workflowID)
		return nil, err
	}
	if err := s.workflowRepo.UpdateStatus(ctx, wf); err != nil {
		logger.ExitMethodWithError("payoutService.RecordDecision", err, "workflowID", workflowID)
		return nil, err
	}

	if wf.Status != domain.WorkflowStatusPending {
		s.notifyResolution(ctx, wf)
	}

	logger.ExitMethod("payoutService.RecordDecision", "workflowID", workflowID, "status", wf.Status)
	return wf, nil
}

func (s *payoutService) notifyResolution(ctx context.Context, wf *domain.ApprovalWorkflow) {
	proposal, err := s.proposalRepo.GetByID(ctx, wf.ProposalID)
	if err != nil {
		logger.Error("Failed to load proposal for resolution notice", "workflowID", wf.ID, "error", err)
		return
	}

	creator, err := s.memberRepo.GetByID(ctx, proposal.CreatedBy)
	if err == nil {
		notification := &domain.Notification{
			MemberID: creator.ID,
			Title:    "Payout Workflow Resolved",
			Message:  fmt.Sprintf("Payout of $%.2f was %s", float64(wf.AmountCents)/100, wf.Status),
			Attributes: map[string]string{
				"topic":       "payout_workflow_resolved",
				"workflow_id": wf.ID.String(),
				"status":      string(wf.Status),
			},
		}
		_ = s.notificationRepo.Create(ctx, notification)
		_ = s.emailSvc.SendWorkflowResolvedNotification(ctx, creator.Email, creator.Name, string(wf.Status), wf.AmountCents)
	}

	// Disbursement itself happens outside this engine; an approved
	// workflow only tells candidates their payout is sanctioned.
	if wf.Status == domain.WorkflowStatusApproved {
		for _, candidateID := range proposal.CandidateMemberIDs {
			if s.pushSvc != nil {
				_ = s.pushSvc.SendToMember(ctx, candidateID, "Payout Approved",
					fmt.Sprintf("Your payout of $%.2f has been sanctioned", float64(wf.AmountCents)/100),
					map[string]string{"workflow_id": wf.ID.String()})
			}
			notification := &domain.Notification{
				MemberID: candidateID,
				Title:    "Payout Approved",
				Message:  fmt.Sprintf("Your payout of $%.2f has been sanctioned for disbursement", float64(wf.AmountCents)/100),
				Attributes: map[string]string{
					"topic":       "payout_sanctioned",
					"workflow_id": wf.ID.String(),
				},
			}
			_ = s.notificationRepo.Create(ctx, notification)
		}
	}
}

func (s *payoutService) GetWorkflow(ctx context.Context, workflowID uuid.UUID) (*domain.ApprovalWorkflow, error) {
	return s.workflowRepo.GetByID(ctx, workflowID)
}

func (s *payoutService) ListPendingWorkflows(ctx context.Context) ([]domain.ApprovalWorkflow, error) {
	return s.workflowRepo.ListByStatus(ctx, domain.WorkflowStatusPending)
}

func (s *payoutService) ExpireStaleWorkflows(ctx context.Context, now time.Time) (int, error) {
	logger.EnterMethod("payoutService.ExpireStaleWorkflows")

	pending, err := s.workflowRepo.ListByStatus(ctx, domain.WorkflowStatusPending)
	if err != nil {
		logger.ExitMethodWithError("payoutService.ExpireStaleWorkflows", err)
		return 0, err
	}

	maxAge := time.Duration(s.params.WorkflowMaxAgeDays) * 24 * time.Hour
	expired := 0
	for i := range pending {
		wf := &pending[i]
		if now.Sub(wf.CreatedAt) <= maxAge {
			continue
		}

		lock := s.workflowLock(wf.ID)
		lock.Lock()
		current, err := s.workflowRepo.GetByID(ctx, wf.ID)
		if err != nil {
			lock.Unlock()
			logger.Error("Failed to reload workflow for expiry", "workflowID", wf.ID, "error", err)
			continue
		}
		if err := engine.Expire(current, now); err != nil {
			// A decision landed between listing and locking; leave it be.
			lock.Unlock()
			continue
		}
		if err := s.workflowRepo.UpdateStatus(ctx, current); err != nil {
			lock.Unlock()
			logger.Error("Failed to persist workflow expiry", "workflowID", wf.ID, "error", err)
			continue
		}
		lock.Unlock()
		expired++
	}

	logger.ExitMethod("payoutService.ExpireStaleWorkflows", "expired", expired)
	return expired, nil
}
