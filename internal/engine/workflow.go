package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"memberfund-backend/internal/domain"
)

// ApprovalPolicy is the configured authorization rule set for payout
// workflows: how many approvals a disbursement needs at each amount tier,
// and which roles may decide.
type ApprovalPolicy struct {
	AmountThresholdCents int64
	StandardApprovals    int
	LargeAmountApprovals int
	AllowedRoles         []domain.Role
}

// RequiredApprovals returns how many APPROVE decisions a disbursement of
// the given amount needs before release.
func (p ApprovalPolicy) RequiredApprovals(amountCents int64) int {
	if amountCents >= p.AmountThresholdCents {
		return p.LargeAmountApprovals
	}
	return p.StandardApprovals
}

// CanApprove reports whether the role is in the approver allow-list.
func (p ApprovalPolicy) CanApprove(role domain.Role) bool {
	for _, r := range p.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// NewApprovalWorkflow opens a pending workflow for a proposal, sizing the
// approval requirement from the policy tier the amount falls into.
func NewApprovalWorkflow(proposal *domain.PayoutProposal, policy ApprovalPolicy, now time.Time) *domain.ApprovalWorkflow {
	return &domain.ApprovalWorkflow{
		ID:                uuid.New(),
		ProposalID:        proposal.ID,
		AmountCents:       proposal.AmountCents,
		RequiredApprovals: policy.RequiredApprovals(proposal.AmountCents),
		Approvals:         []domain.ApprovalDecision{},
		Status:            domain.WorkflowStatusPending,
		CreatedAt:         now,
	}
}

// RecordDecision applies one approver's decision to a pending workflow.
// A single rejection vetoes the payout immediately, no matter how many
// approvals preceded it. Approvals accumulate until the required count is
// reached. Every failure leaves the workflow unchanged.
//
// Callers must serialize concurrent calls against the same workflow;
// different workflows are independent.
func RecordDecision(wf *domain.ApprovalWorkflow, approverID int32, role domain.Role, decision domain.Decision, now time.Time, policy ApprovalPolicy) error {
	if !policy.CanApprove(role) {
		return fmt.Errorf("%w: role %s may not decide payout workflows", ErrUnauthorized, role)
	}
	if wf.Status != domain.WorkflowStatusPending {
		return fmt.Errorf("%w: workflow %s is %s", ErrWorkflowClosed, wf.ID, wf.Status)
	}
	if wf.HasDecided(approverID) {
		return fmt.Errorf("%w: approver %d already decided on workflow %s", ErrDuplicateApprover, approverID, wf.ID)
	}
	if decision != domain.DecisionApprove && decision != domain.DecisionReject {
		return fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, decision)
	}

	wf.Approvals = append(wf.Approvals, domain.ApprovalDecision{
		ApproverID: approverID,
		Role:       role,
		Decision:   decision,
		DecidedAt:  now,
	})

	switch decision {
	case domain.DecisionReject:
		wf.Status = domain.WorkflowStatusRejected
		wf.ResolvedAt = &now
	case domain.DecisionApprove:
		if wf.ApprovalCount() >= wf.RequiredApprovals {
			wf.Status = domain.WorkflowStatusApproved
			wf.ResolvedAt = &now
		}
	}

	return nil
}

// Expire closes a pending workflow that outlived its staleness window.
// The engine holds no timers; when to expire is the external scheduler's
// call. Terminal workflows cannot be expired.
func Expire(wf *domain.ApprovalWorkflow, now time.Time) error {
	if wf.Status != domain.WorkflowStatusPending {
		return fmt.Errorf("%w: workflow %s is %s", ErrWorkflowClosed, wf.ID, wf.Status)
	}
	wf.Status = domain.WorkflowStatusExpired
	wf.ResolvedAt = &now
	return nil
}
