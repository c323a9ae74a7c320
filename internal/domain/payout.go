package domain

import (
	"time"

	"github.com/google/uuid"
)

type WorkflowStatus string

const (
	WorkflowStatusPending  WorkflowStatus = "PENDING"
	WorkflowStatusApproved WorkflowStatus = "APPROVED"
	WorkflowStatusRejected WorkflowStatus = "REJECTED"
	WorkflowStatusExpired  WorkflowStatus = "EXPIRED"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// FundSnapshot captures aggregate revenue at the moment a proposal was drafted.
type FundSnapshot struct {
	TotalRevenueCents int64     `json:"total_revenue_cents"`
	EvaluatedAt       time.Time `json:"evaluated_at"`
}

type PayoutProposal struct {
	ID                 uuid.UUID    `json:"id"`
	AmountCents        int64        `json:"amount_cents"`
	CandidateMemberIDs []int32      `json:"candidate_member_ids"`
	FundSnapshot       FundSnapshot `json:"fund_snapshot"`
	CreatedBy          int32        `json:"created_by"`
	CreatedAt          time.Time    `json:"created_at"`
}

type ApprovalDecision struct {
	ApproverID int32     `json:"approver_id"`
	Role       Role      `json:"approver_role"`
	Decision   Decision  `json:"decision"`
	DecidedAt  time.Time `json:"decided_at"`
}

// ApprovalWorkflow gates the release of a proposed disbursement. It is
// mutated only through the engine's transition functions and is terminal
// once approved, rejected, or expired.
type ApprovalWorkflow struct {
	ID                uuid.UUID          `json:"id"`
	ProposalID        uuid.UUID          `json:"proposal_id"`
	AmountCents       int64              `json:"amount_cents"`
	RequiredApprovals int                `json:"required_approvals"`
	Approvals         []ApprovalDecision `json:"approvals"`
	Status            WorkflowStatus     `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	ResolvedAt        *time.Time         `json:"resolved_at,omitempty"`
}

// ApprovalCount returns the number of APPROVE decisions recorded so far.
func (w *ApprovalWorkflow) ApprovalCount() int {
	n := 0
	for _, a := range w.Approvals {
		if a.Decision == DecisionApprove {
			n++
		}
	}
	return n
}

// HasDecided reports whether the approver already holds a decision on
// this workflow.
func (w *ApprovalWorkflow) HasDecided(approverID int32) bool {
	for _, a := range w.Approvals {
		if a.ApproverID == approverID {
			return true
		}
	}
	return false
}
