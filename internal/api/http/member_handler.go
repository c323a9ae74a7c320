package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/engine"
	"memberfund-backend/internal/service"
)

type MemberHandler struct {
	memberSvc service.MemberService
	tenureSvc service.TenureService
	payoutSvc service.PayoutService
}

func NewMemberHandler(memberSvc service.MemberService, tenureSvc service.TenureService, payoutSvc service.PayoutService) *MemberHandler {
	return &MemberHandler{
		memberSvc: memberSvc,
		tenureSvc: tenureSvc,
		payoutSvc: payoutSvc,
	}
}

func memberIDFromPath(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid member id %q", engine.ErrInvalidInput, raw)
	}
	return int32(id), nil
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberSvc.ListMembers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := memberIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	member, err := h.memberSvc.GetMember(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	id, err := memberIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ledger, err := h.tenureSvc.GetMemberLedger(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

func (h *MemberHandler) GetRank(w http.ResponseWriter, r *http.Request) {
	id, err := memberIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.payoutSvc.GetMemberRank(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type recordPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurred_at"` // RFC 3339
}

func (h *MemberHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := memberIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", engine.ErrInvalidInput))
		return
	}
	occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
	if err != nil {
		writeError(w, fmt.Errorf("%w: occurred_at must be RFC 3339, got %q", engine.ErrInvalidInput, req.OccurredAt))
		return
	}

	payment, err := h.memberSvc.RecordPayment(r.Context(), id,
		req.AmountCents, domain.PaymentKind(req.Kind), domain.PaymentStatus(req.Status), occurredAt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *MemberHandler) JoinQueue(w http.ResponseWriter, r *http.Request) {
	id, err := memberIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Members join for themselves; admins may enroll anyone.
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, fmt.Errorf("%w: authentication required", engine.ErrUnauthorized))
		return
	}
	if claims.MemberID != id && claims.Role != domain.RoleAdmin {
		writeError(w, fmt.Errorf("%w: cannot enroll another member in the queue", engine.ErrUnauthorized))
		return
	}

	entry, err := h.memberSvc.JoinQueue(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
