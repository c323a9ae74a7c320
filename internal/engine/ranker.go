package engine

import (
	"sort"

	"memberfund-backend/internal/domain"
)

// RankedEntry is one row of the payout queue ranking, produced fresh on
// every request.
type RankedEntry struct {
	MemberID               int32 `json:"member_id"`
	Rank                   int   `json:"rank"`
	ContinuousTenureMonths int   `json:"continuous_tenure_months"`
	QueuePosition          int32 `json:"queue_position"`
}

// Rank orders the payout queue: longest continuous tenure first, with the
// earlier queue position winning ties. The tie-break makes the order a
// deterministic total order, so ranking the same snapshot twice yields the
// same output regardless of input order.
//
// Entries that are ineligible, have an inactive subscription, or whose
// member has no tenure start are excluded entirely; a member with
// undefined tenure cannot be ranked, not merely ranked last.
func Rank(entries []domain.QueueEntry, ledgers map[int32]*TenureLedger) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(entries))

	for _, e := range entries {
		if !e.IsEligible || !e.SubscriptionActive {
			continue
		}
		ledger, ok := ledgers[e.MemberID]
		if !ok || ledger.TenureStart == nil {
			continue
		}
		ranked = append(ranked, RankedEntry{
			MemberID:               e.MemberID,
			ContinuousTenureMonths: ledger.ContinuousTenureMonths,
			QueuePosition:          e.QueuePosition,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ContinuousTenureMonths != ranked[j].ContinuousTenureMonths {
			return ranked[i].ContinuousTenureMonths > ranked[j].ContinuousTenureMonths
		}
		return ranked[i].QueuePosition < ranked[j].QueuePosition
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
