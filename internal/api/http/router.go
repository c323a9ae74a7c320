package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/security"
	"memberfund-backend/internal/service"
)

// NewRouter assembles the full API surface. Everything under /api/v1
// except the auth endpoints requires a valid access token; payment
// recording and payout governance are additionally role-gated.
func NewRouter(
	tokens security.TokenManager,
	authSvc service.AuthService,
	memberSvc service.MemberService,
	tenureSvc service.TenureService,
	payoutSvc service.PayoutService,
	noteSvc service.NotificationService,
	approverRoles []domain.Role,
) *mux.Router {
	authHandler := NewAuthHandler(authSvc)
	memberHandler := NewMemberHandler(memberSvc, tenureSvc, payoutSvc)
	payoutHandler := NewPayoutHandler(payoutSvc)
	noteHandler := NewNotificationHandler(noteSvc)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(mux.MiddlewareFunc(AuthMiddleware(tokens)))

	authed.HandleFunc("/members", memberHandler.ListMembers).Methods(http.MethodGet)
	authed.HandleFunc("/members/{id}", memberHandler.GetMember).Methods(http.MethodGet)
	authed.HandleFunc("/members/{id}/ledger", memberHandler.GetLedger).Methods(http.MethodGet)
	authed.HandleFunc("/members/{id}/rank", memberHandler.GetRank).Methods(http.MethodGet)
	authed.HandleFunc("/members/{id}/queue", memberHandler.JoinQueue).Methods(http.MethodPost)
	authed.HandleFunc("/payouts/queue", payoutHandler.GetRankedQueue).Methods(http.MethodGet)
	authed.HandleFunc("/payouts/fund", payoutHandler.GetFundStatus).Methods(http.MethodGet)
	authed.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	admin := authed.NewRoute().Subrouter()
	admin.Use(mux.MiddlewareFunc(RequireRoles(domain.RoleAdmin, domain.RoleFinanceManager)))
	admin.HandleFunc("/members/{id}/payments", memberHandler.RecordPayment).Methods(http.MethodPost)

	approvers := authed.NewRoute().Subrouter()
	approvers.Use(mux.MiddlewareFunc(RequireRoles(approverRoles...)))
	approvers.HandleFunc("/payouts/proposals", payoutHandler.CreateProposal).Methods(http.MethodPost)
	approvers.HandleFunc("/payouts/workflows", payoutHandler.ListPendingWorkflows).Methods(http.MethodGet)
	approvers.HandleFunc("/payouts/workflows/{id}", payoutHandler.GetWorkflow).Methods(http.MethodGet)
	approvers.HandleFunc("/payouts/workflows/{id}/decisions", payoutHandler.RecordDecision).Methods(http.MethodPost)

	return router
}
