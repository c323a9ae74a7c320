// Package engine implements the membership tenure and payout governance
// rules: continuous-tenure ledgers, deterministic queue ranking, fund
// eligibility, and the multi-approver authorization workflow. Everything
// here is a pure computation over caller-supplied snapshots; persistence
// and transport belong to the layers above.
package engine

import "errors"

var (
	// ErrInvalidInput marks malformed payment or queue records, such as
	// negative amounts or future-dated timestamps.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized marks a decision from a role outside the approver
	// allow-list.
	ErrUnauthorized = errors.New("unauthorized approver role")

	// ErrWorkflowClosed marks a decision submitted after the workflow
	// reached a terminal state.
	ErrWorkflowClosed = errors.New("workflow closed")

	// ErrDuplicateApprover marks a second decision from the same approver.
	ErrDuplicateApprover = errors.New("duplicate approver")

	// ErrNotEligible marks a ranking request for a member with no tenure
	// start.
	ErrNotEligible = errors.New("member not eligible for ranking")
)
