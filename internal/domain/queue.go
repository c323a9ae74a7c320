package domain

// QueueEntry is one member's seat in the payout queue. QueuePosition is
// assigned by the store at join time and never reused; it is the stable
// tie-break for ranking, distinct from the computed rank.
type QueueEntry struct {
	MemberID           int32  `json:"member_id"`
	QueuePosition      int32  `json:"queue_position"`
	IsEligible         bool   `json:"is_eligible"`
	SubscriptionActive bool   `json:"subscription_active"`
	JoinedOn           string `json:"joined_on"`
}
