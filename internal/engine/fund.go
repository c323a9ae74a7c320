package engine

import "time"

// FundParams are the externally supplied inputs to a fund evaluation. All
// thresholds come from configuration, never literals.
type FundParams struct {
	TotalRevenueCents         int64
	Now                       time.Time
	LaunchDate                time.Time
	FundThresholdCents        int64
	RequiredMonthsAfterLaunch int
	RewardPerWinnerCents      int64
	EligibleMemberCount       int
}

// FundStatus is the outcome of a fund eligibility check.
type FundStatus struct {
	FundReady         bool      `json:"fund_ready"`
	TimeReady         bool      `json:"time_ready"`
	PayoutReady       bool      `json:"payout_ready"`
	RequiredDate      time.Time `json:"required_date"`
	PotentialWinners  int       `json:"potential_winners"`
	TotalRevenueCents int64     `json:"total_revenue_cents"`
	EvaluatedAt       time.Time `json:"evaluated_at"`
}

// EvaluateFund checks the two independent payout gates: accumulated
// revenue against the fund threshold, and elapsed calendar months since
// launch. Both are mandatory; neither alone authorizes a payout.
//
// PotentialWinners is how many rewards the fund can cover, capped by the
// number of eligible members so the revenue can never imply more winners
// than members exist.
func EvaluateFund(p FundParams) FundStatus {
	status := FundStatus{
		FundReady:         p.TotalRevenueCents >= p.FundThresholdCents,
		RequiredDate:      AddMonths(p.LaunchDate, p.RequiredMonthsAfterLaunch),
		TotalRevenueCents: p.TotalRevenueCents,
		EvaluatedAt:       p.Now,
	}
	status.TimeReady = !p.Now.Before(status.RequiredDate)
	status.PayoutReady = status.FundReady && status.TimeReady

	if p.RewardPerWinnerCents > 0 && p.TotalRevenueCents > 0 {
		winners := int(p.TotalRevenueCents / p.RewardPerWinnerCents)
		if winners > p.EligibleMemberCount {
			winners = p.EligibleMemberCount
		}
		if winners < 0 {
			winners = 0
		}
		status.PotentialWinners = winners
	}

	return status
}
