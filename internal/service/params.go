package service

import (
	"memberfund-backend/internal/config"
	"memberfund-backend/internal/engine"
)

// NewGovernanceParams maps the validated configuration into the shape
// the services and engine consume.
func NewGovernanceParams(cfg *config.Config) GovernanceParams {
	return GovernanceParams{
		GracePeriodDays:           cfg.Governance.GracePeriodDays,
		FundThresholdCents:        cfg.Governance.FundThresholdCents,
		LaunchDate:                cfg.LaunchTime(),
		RequiredMonthsAfterLaunch: cfg.Governance.RequiredMonthsAfterLaunch,
		RewardPerWinnerCents:      cfg.Governance.RewardPerWinnerCents,
		Policy: engine.ApprovalPolicy{
			AmountThresholdCents: cfg.Governance.ApprovalAmountThresholdCents,
			StandardApprovals:    cfg.Governance.StandardApprovals,
			LargeAmountApprovals: cfg.Governance.LargeAmountApprovals,
			AllowedRoles:         cfg.ApproverRoles(),
		},
		WorkflowMaxAgeDays: cfg.Governance.WorkflowMaxAgeDays,
		DefaultWarningDays: cfg.Governance.DefaultWarningDays,
	}
}
