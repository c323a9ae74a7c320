package service

import (
	"context"
	"fmt"
	"time"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/engine"
	"memberfund-backend/internal/logger"
	"memberfund-backend/internal/repository"
)

type memberService struct {
	memberRepo  repository.MemberRepository
	paymentRepo repository.PaymentRepository
	queueRepo   repository.QueueRepository
}

func NewMemberService(memberRepo repository.MemberRepository, paymentRepo repository.PaymentRepository, queueRepo repository.QueueRepository) MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		queueRepo:   queueRepo,
	}
}

func (s *memberService) GetMember(ctx context.Context, id int32) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.memberRepo.List(ctx)
}

// RecordPayment validates and stores a payment fact. Malformed records
// are rejected here, before they can reach the store and corrupt tenure
// computations downstream.
func (s *memberService) RecordPayment(ctx context.Context, memberID int32, amountCents int64, kind domain.PaymentKind, status domain.PaymentStatus, occurredAt time.Time) (*domain.PaymentRecord, error) {
	logger.EnterMethod("memberService.RecordPayment", "memberID", memberID, "amountCents", amountCents, "kind", kind)

	if amountCents < 0 {
		err := fmt.Errorf("%w: payment amount must be >= 0, got %d", engine.ErrInvalidInput, amountCents)
		logger.ExitMethodWithError("memberService.RecordPayment", err, "memberID", memberID)
		return nil, err
	}
	if occurredAt.After(time.Now().UTC()) {
		err := fmt.Errorf("%w: payment date %s is in the future", engine.ErrInvalidInput, occurredAt.Format("2006-01-02"))
		logger.ExitMethodWithError("memberService.RecordPayment", err, "memberID", memberID)
		return nil, err
	}
	switch kind {
	case domain.PaymentKindJoiningFee, domain.PaymentKindMonthlyFee:
	default:
		err := fmt.Errorf("%w: unknown payment kind %q", engine.ErrInvalidInput, kind)
		logger.ExitMethodWithError("memberService.RecordPayment", err, "memberID", memberID)
		return nil, err
	}
	switch status {
	case domain.PaymentStatusCompleted, domain.PaymentStatusFailed, domain.PaymentStatusPending:
	default:
		err := fmt.Errorf("%w: unknown payment status %q", engine.ErrInvalidInput, status)
		logger.ExitMethodWithError("memberService.RecordPayment", err, "memberID", memberID)
		return nil, err
	}

	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		logger.ExitMethodWithError("memberService.RecordPayment", err, "memberID", memberID)
		return nil, err
	}

	payment := &domain.PaymentRecord{
		MemberID:    memberID,
		AmountCents: amountCents,
		Kind:        kind,
		Status:      status,
		OccurredAt:  occurredAt,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		logger.ExitMethodWithError("memberService.RecordPayment", err, "memberID", memberID)
		return nil, err
	}

	logger.ExitMethod("memberService.RecordPayment", "memberID", memberID, "paymentID", payment.ID)
	return payment, nil
}

func (s *memberService) JoinQueue(ctx context.Context, memberID int32) (*domain.QueueEntry, error) {
	logger.EnterMethod("memberService.JoinQueue", "memberID", memberID)

	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		logger.ExitMethodWithError("memberService.JoinQueue", err, "memberID", memberID)
		return nil, err
	}

	if existing, err := s.queueRepo.GetByMember(ctx, memberID); err == nil && existing != nil {
		err := fmt.Errorf("%w: member %d already holds queue position %d", engine.ErrInvalidInput, memberID, existing.QueuePosition)
		logger.ExitMethodWithError("memberService.JoinQueue", err, "memberID", memberID)
		return nil, err
	}

	entry, err := s.queueRepo.Join(ctx, memberID)
	if err != nil {
		logger.ExitMethodWithError("memberService.JoinQueue", err, "memberID", memberID)
		return nil, err
	}

	logger.ExitMethod("memberService.JoinQueue", "memberID", memberID, "queuePosition", entry.QueuePosition)
	return entry, nil
}
