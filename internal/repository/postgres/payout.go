package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/repository"
)

type proposalRepository struct {
	db *sql.DB
}

func NewProposalRepository(db *sql.DB) repository.ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *domain.PayoutProposal) error {
	query := `INSERT INTO payout_proposals (id, amount_cents, candidate_member_ids, fund_revenue_cents, fund_evaluated_at, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		proposal.ID, proposal.AmountCents, pq.Array(proposal.CandidateMemberIDs),
		proposal.FundSnapshot.TotalRevenueCents, proposal.FundSnapshot.EvaluatedAt,
		proposal.CreatedBy, proposal.CreatedAt,
	)
	return err
}

func (r *proposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayoutProposal, error) {
	query := `SELECT id, amount_cents, candidate_member_ids, fund_revenue_cents, fund_evaluated_at, created_by, created_at
	          FROM payout_proposals WHERE id = $1`

	var p domain.PayoutProposal
	var candidates pq.Int32Array
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.AmountCents, &candidates,
		&p.FundSnapshot.TotalRevenueCents, &p.FundSnapshot.EvaluatedAt,
		&p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CandidateMemberIDs = []int32(candidates)
	return &p, nil
}

type workflowRepository struct {
	db *sql.DB
}

func NewWorkflowRepository(db *sql.DB) repository.WorkflowRepository {
	return &workflowRepository{db: db}
}

func (r *workflowRepository) Create(ctx context.Context, wf *domain.ApprovalWorkflow) error {
	query := `INSERT INTO approval_workflows (id, proposal_id, amount_cents, required_approvals, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		wf.ID, wf.ProposalID, wf.AmountCents, wf.RequiredApprovals, wf.Status, wf.CreatedAt,
	)
	return err
}

func (r *workflowRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ApprovalWorkflow, error) {
	query := `SELECT id, proposal_id, amount_cents, required_approvals, status, created_at, resolved_at
	          FROM approval_workflows WHERE id = $1`

	var wf domain.ApprovalWorkflow
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&wf.ID, &wf.ProposalID, &wf.AmountCents, &wf.RequiredApprovals, &wf.Status, &wf.CreatedAt, &wf.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	decisions, err := r.listDecisions(ctx, id)
	if err != nil {
		return nil, err
	}
	wf.Approvals = decisions
	return &wf, nil
}

func (r *workflowRepository) UpdateStatus(ctx context.Context, wf *domain.ApprovalWorkflow) error {
	query := `UPDATE approval_workflows SET status = $1, resolved_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, wf.Status, wf.ResolvedAt, wf.ID)
	return err
}

func (r *workflowRepository) AddDecision(ctx context.Context, workflowID uuid.UUID, decision domain.ApprovalDecision) error {
	query := `INSERT INTO approval_decisions (workflow_id, approver_id, approver_role, decision, decided_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		workflowID, decision.ApproverID, decision.Role, decision.Decision, decision.DecidedAt,
	)
	return err
}

func (r *workflowRepository) ListByStatus(ctx context.Context, status domain.WorkflowStatus) ([]domain.ApprovalWorkflow, error) {
	query := `SELECT id, proposal_id, amount_cents, required_approvals, status, created_at, resolved_at
	          FROM approval_workflows WHERE status = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []domain.ApprovalWorkflow
	for rows.Next() {
		var wf domain.ApprovalWorkflow
		if err := rows.Scan(&wf.ID, &wf.ProposalID, &wf.AmountCents, &wf.RequiredApprovals, &wf.Status, &wf.CreatedAt, &wf.ResolvedAt); err != nil {
			return nil, err
		}
		workflows = append(workflows, wf)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range workflows {
		decisions, err := r.listDecisions(ctx, workflows[i].ID)
		if err != nil {
			return nil, err
		}
		workflows[i].Approvals = decisions
	}
	return workflows, nil
}

func (r *workflowRepository) listDecisions(ctx context.Context, workflowID uuid.UUID) ([]domain.ApprovalDecision, error) {
	query := `SELECT approver_id, approver_role, decision, decided_at
	          FROM approval_decisions WHERE workflow_id = $1 ORDER BY decided_at`
	rows, err := r.db.QueryContext(ctx, query, workflowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	decisions := []domain.ApprovalDecision{}
	for rows.Next() {
		var d domain.ApprovalDecision
		if err := rows.Scan(&d.ApproverID, &d.Role, &d.Decision, &d.DecidedAt); err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}
