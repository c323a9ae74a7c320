package jobs

import (
	"context"
	"time"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/logger"
)

// SweepDefaults walks the payout queue, recomputes every member's tenure
// ledger, and reconciles queue eligibility and member status with the
// grace-period rule. Members approaching default get a warning email;
// members who crossed the boundary get a default notice and lose their
// payout eligibility until they pay again.
func (jr *JobRunner) SweepDefaults() {
	jr.runWithRecovery("SweepDefaults", func() {
		ctx := context.Background()

		entries, err := jr.store.QueueRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list queue entries", "error", err)
			return
		}

		warningDays := jr.config.Governance.DefaultWarningDays
		defaulted, warned, restored := 0, 0, 0

		for _, entry := range entries {
			ledger, err := jr.services.Tenure.GetMemberLedger(ctx, entry.MemberID)
			if err != nil {
				logger.Error("Failed to compute ledger", "member_id", entry.MemberID, "error", err)
				continue
			}

			member, err := jr.store.MemberRepository.GetByID(ctx, entry.MemberID)
			if err != nil {
				logger.Error("Failed to load member", "member_id", entry.MemberID, "error", err)
				continue
			}

			switch {
			case ledger.IsInDefault:
				if entry.IsEligible {
					if err := jr.store.QueueRepository.SetEligibility(ctx, entry.MemberID, false); err != nil {
						logger.Error("Failed to revoke eligibility", "member_id", entry.MemberID, "error", err)
						continue
					}
				}
				if member.Status != domain.MemberStatusDefault {
					member.Status = domain.MemberStatusDefault
					if err := jr.store.MemberRepository.Update(ctx, member); err != nil {
						logger.Error("Failed to update member status", "member_id", member.ID, "error", err)
					}
					_ = jr.services.Email.SendDefaultNotice(ctx, member.Email, member.Name, ledger.DaysSinceLastPayment)
					_ = jr.store.NotificationRepository.Create(ctx, &domain.Notification{
						MemberID: member.ID,
						Title:    "Account in Default",
						Message:  "Your account entered default and your payout eligibility is suspended.",
						Attributes: map[string]string{
							"topic": "member_default",
						},
					})
				}
				defaulted++

			case ledger.LastPaymentAt != nil && ledger.DaysUntilDefault <= warningDays:
				_ = jr.services.Email.SendDefaultWarning(ctx, member.Email, member.Name, ledger.DaysUntilDefault)
				warned++

			default:
				// A payment came in: restore eligibility and status.
				if !entry.IsEligible {
					if err := jr.store.QueueRepository.SetEligibility(ctx, entry.MemberID, true); err != nil {
						logger.Error("Failed to restore eligibility", "member_id", entry.MemberID, "error", err)
						continue
					}
					restored++
				}
				if member.Status == domain.MemberStatusDefault {
					member.Status = domain.MemberStatusActive
					if err := jr.store.MemberRepository.Update(ctx, member); err != nil {
						logger.Error("Failed to restore member status", "member_id", member.ID, "error", err)
					}
				}
			}
		}

		logger.Info("Default sweep finished",
			"scanned", len(entries), "defaulted", defaulted, "warned", warned, "restored", restored)
	})
}

// EvaluateFund checks the payout gates and tells the approvers when the
// fund first becomes ready for a proposal.
func (jr *JobRunner) EvaluateFund() {
	jr.runWithRecovery("EvaluateFund", func() {
		ctx := context.Background()

		status, err := jr.services.Payout.GetFundStatus(ctx)
		if err != nil {
			logger.Error("Failed to evaluate fund", "error", err)
			return
		}

		logger.Info("Fund evaluated",
			"total_revenue_cents", status.TotalRevenueCents,
			"fund_ready", status.FundReady,
			"time_ready", status.TimeReady,
			"potential_winners", status.PotentialWinners)

		if !status.PayoutReady || status.PotentialWinners == 0 {
			return
		}

		// There is no open workflow yet: nudge the approvers to draft one.
		pending, err := jr.services.Payout.ListPendingWorkflows(ctx)
		if err != nil {
			logger.Error("Failed to list pending workflows", "error", err)
			return
		}
		if len(pending) > 0 {
			return
		}

		approvers, err := jr.store.MemberRepository.ListByRole(ctx, jr.config.ApproverRoles())
		if err != nil {
			logger.Error("Failed to list approvers", "error", err)
			return
		}
		for _, approver := range approvers {
			_ = jr.services.Email.SendFundReadyNotification(ctx, approver.Email, approver.Name,
				status.TotalRevenueCents, status.PotentialWinners)
		}
	})
}

// ExpireStaleWorkflows closes pending approval workflows that exceeded
// the configured staleness window.
func (jr *JobRunner) ExpireStaleWorkflows() {
	jr.runWithRecovery("ExpireStaleWorkflows", func() {
		ctx := context.Background()

		expired, err := jr.services.Payout.ExpireStaleWorkflows(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to expire stale workflows", "error", err)
			return
		}
		if expired > 0 {
			logger.Info("Expired stale workflows", "count", expired)
		}
	})
}
