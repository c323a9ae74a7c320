package service

import (
	"context"
	"time"

	"memberfund-backend/internal/engine"
	"memberfund-backend/internal/logger"
	"memberfund-backend/internal/repository"
)

type tenureService struct {
	memberRepo  repository.MemberRepository
	paymentRepo repository.PaymentRepository
	params      GovernanceParams
}

func NewTenureService(memberRepo repository.MemberRepository, paymentRepo repository.PaymentRepository, params GovernanceParams) TenureService {
	return &tenureService{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		params:      params,
	}
}

func (s *tenureService) GetMemberLedger(ctx context.Context, memberID int32) (*engine.TenureLedger, error) {
	logger.EnterMethod("tenureService.GetMemberLedger", "memberID", memberID)

	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		logger.ExitMethodWithError("tenureService.GetMemberLedger", err, "memberID", memberID)
		return nil, err
	}

	payments, err := s.paymentRepo.ListByMember(ctx, memberID)
	if err != nil {
		logger.ExitMethodWithError("tenureService.GetMemberLedger", err, "memberID", memberID)
		return nil, err
	}

	ledger, err := engine.ComputeLedger(memberID, payments, time.Now().UTC(), s.params.GracePeriodDays)
	if err != nil {
		logger.ExitMethodWithError("tenureService.GetMemberLedger", err, "memberID", memberID)
		return nil, err
	}

	logger.ExitMethod("tenureService.GetMemberLedger", "memberID", memberID,
		"tenureMonths", ledger.ContinuousTenureMonths, "inDefault", ledger.IsInDefault)
	return ledger, nil
}
