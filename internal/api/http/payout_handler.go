package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/engine"
	"memberfund-backend/internal/service"
)

type PayoutHandler struct {
	payoutSvc service.PayoutService
}

func NewPayoutHandler(payoutSvc service.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutSvc: payoutSvc}
}

func (h *PayoutHandler) GetRankedQueue(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.payoutSvc.GetRankedQueue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (h *PayoutHandler) GetFundStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.payoutSvc.GetFundStatus(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type createProposalRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

type proposalResponse struct {
	Proposal *domain.PayoutProposal   `json:"proposal"`
	Workflow *domain.ApprovalWorkflow `json:"workflow"`
}

func (h *PayoutHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, fmt.Errorf("%w: authentication required", engine.ErrUnauthorized))
		return
	}

	var req createProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", engine.ErrInvalidInput))
		return
	}

	proposal, wf, err := h.payoutSvc.CreateProposal(r.Context(), req.AmountCents, claims.MemberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proposalResponse{Proposal: proposal, Workflow: wf})
}

func workflowIDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid workflow id %q", engine.ErrInvalidInput, raw)
	}
	return id, nil
}

func (h *PayoutHandler) ListPendingWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.payoutSvc.ListPendingWorkflows(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workflows)
}

func (h *PayoutHandler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	id, err := workflowIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	wf, err := h.payoutSvc.GetWorkflow(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

func (h *PayoutHandler) RecordDecision(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, fmt.Errorf("%w: authentication required", engine.ErrUnauthorized))
		return
	}

	id, err := workflowIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", engine.ErrInvalidInput))
		return
	}

	wf, err := h.payoutSvc.RecordDecision(r.Context(), id, claims.MemberID, domain.Decision(req.Decision))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wf)
}
