package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"memberfund-backend/internal/domain"
)

func ledgerWithTenure(memberID int32, months int) *TenureLedger {
	start := date(2024, 1, 1)
	return &TenureLedger{MemberID: memberID, TenureStart: &start, ContinuousTenureMonths: months}
}

func TestRank(t *testing.T) {
	t.Run("Longest tenure ranks first", func(t *testing.T) {
		entries := []domain.QueueEntry{
			{MemberID: 1, QueuePosition: 1, IsEligible: true, SubscriptionActive: true},
			{MemberID: 2, QueuePosition: 2, IsEligible: true, SubscriptionActive: true},
			{MemberID: 3, QueuePosition: 3, IsEligible: true, SubscriptionActive: true},
		}
		ledgers := map[int32]*TenureLedger{
			1: ledgerWithTenure(1, 4),
			2: ledgerWithTenure(2, 12),
			3: ledgerWithTenure(3, 8),
		}

		ranked := Rank(entries, ledgers)
		assert.Len(t, ranked, 3)
		assert.Equal(t, int32(2), ranked[0].MemberID)
		assert.Equal(t, int32(3), ranked[1].MemberID)
		assert.Equal(t, int32(1), ranked[2].MemberID)
		assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
	})

	t.Run("Equal tenure resolves by queue position", func(t *testing.T) {
		entries := []domain.QueueEntry{
			{MemberID: 1, QueuePosition: 9, IsEligible: true, SubscriptionActive: true},
			{MemberID: 2, QueuePosition: 3, IsEligible: true, SubscriptionActive: true},
		}
		ledgers := map[int32]*TenureLedger{
			1: ledgerWithTenure(1, 6),
			2: ledgerWithTenure(2, 6),
		}

		ranked := Rank(entries, ledgers)
		assert.Equal(t, int32(2), ranked[0].MemberID)
		assert.Equal(t, int32(1), ranked[1].MemberID)
	})

	t.Run("Deterministic regardless of input order", func(t *testing.T) {
		a := domain.QueueEntry{MemberID: 1, QueuePosition: 5, IsEligible: true, SubscriptionActive: true}
		b := domain.QueueEntry{MemberID: 2, QueuePosition: 2, IsEligible: true, SubscriptionActive: true}
		ledgers := map[int32]*TenureLedger{
			1: ledgerWithTenure(1, 6),
			2: ledgerWithTenure(2, 6),
		}

		first := Rank([]domain.QueueEntry{a, b}, ledgers)
		second := Rank([]domain.QueueEntry{b, a}, ledgers)
		assert.Equal(t, first, second)
	})

	t.Run("Idempotent over the same snapshot", func(t *testing.T) {
		entries := []domain.QueueEntry{
			{MemberID: 1, QueuePosition: 1, IsEligible: true, SubscriptionActive: true},
			{MemberID: 2, QueuePosition: 2, IsEligible: true, SubscriptionActive: true},
		}
		ledgers := map[int32]*TenureLedger{
			1: ledgerWithTenure(1, 3),
			2: ledgerWithTenure(2, 7),
		}

		assert.Equal(t, Rank(entries, ledgers), Rank(entries, ledgers))
	})

	t.Run("Ineligible and inactive entries are excluded", func(t *testing.T) {
		entries := []domain.QueueEntry{
			{MemberID: 1, QueuePosition: 1, IsEligible: false, SubscriptionActive: true},
			{MemberID: 2, QueuePosition: 2, IsEligible: true, SubscriptionActive: false},
			{MemberID: 3, QueuePosition: 3, IsEligible: true, SubscriptionActive: true},
		}
		ledgers := map[int32]*TenureLedger{
			1: ledgerWithTenure(1, 6),
			2: ledgerWithTenure(2, 6),
			3: ledgerWithTenure(3, 6),
		}

		ranked := Rank(entries, ledgers)
		assert.Len(t, ranked, 1)
		assert.Equal(t, int32(3), ranked[0].MemberID)
	})

	t.Run("Member without tenure start is excluded, not ranked last", func(t *testing.T) {
		noTenure := &TenureLedger{MemberID: 1}
		entries := []domain.QueueEntry{
			{MemberID: 1, QueuePosition: 1, IsEligible: true, SubscriptionActive: true},
			{MemberID: 2, QueuePosition: 2, IsEligible: true, SubscriptionActive: true},
		}
		ledgers := map[int32]*TenureLedger{1: noTenure, 2: ledgerWithTenure(2, 1)}

		ranked := Rank(entries, ledgers)
		assert.Len(t, ranked, 1)
		assert.Equal(t, int32(2), ranked[0].MemberID)
	})

	t.Run("Member missing from ledgers is excluded", func(t *testing.T) {
		entries := []domain.QueueEntry{
			{MemberID: 1, QueuePosition: 1, IsEligible: true, SubscriptionActive: true},
		}

		ranked := Rank(entries, map[int32]*TenureLedger{})
		assert.Empty(t, ranked)
	})

	t.Run("Empty queue yields empty ranking", func(t *testing.T) {
		ranked := Rank(nil, nil)
		assert.NotNil(t, ranked)
		assert.Empty(t, ranked)
	})
}

func TestRankUsesLedgerTenure(t *testing.T) {
	// Ranking consumes computed ledgers end to end: tenure months come from
	// payment history, not from any stored column.
	now := date(2024, 7, 15)

	olderPayments := []domain.PaymentRecord{
		completedPayment(1, domain.PaymentKindJoiningFee, 30000, date(2023, 7, 1)),
		completedPayment(1, domain.PaymentKindMonthlyFee, 2500, now.AddDate(0, 0, -5)),
	}
	newerPayments := []domain.PaymentRecord{
		completedPayment(2, domain.PaymentKindJoiningFee, 30000, date(2024, 3, 1)),
		completedPayment(2, domain.PaymentKindMonthlyFee, 2500, now.AddDate(0, 0, -5)),
	}

	older, err := ComputeLedger(1, olderPayments, now, 30)
	assert.NoError(t, err)
	newer, err := ComputeLedger(2, newerPayments, now, 30)
	assert.NoError(t, err)

	entries := []domain.QueueEntry{
		{MemberID: 2, QueuePosition: 1, IsEligible: true, SubscriptionActive: true},
		{MemberID: 1, QueuePosition: 2, IsEligible: true, SubscriptionActive: true},
	}
	ranked := Rank(entries, map[int32]*TenureLedger{1: older, 2: newer})

	assert.Equal(t, int32(1), ranked[0].MemberID)
	assert.Equal(t, 12, ranked[0].ContinuousTenureMonths)
	assert.Equal(t, int32(2), ranked[1].MemberID)
}
