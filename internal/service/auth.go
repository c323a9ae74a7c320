package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"memberfund-backend/internal/logger"
	"memberfund-backend/internal/repository"
	"memberfund-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	memberRepo repository.MemberRepository
	tokens     security.TokenManager
}

func NewAuthService(memberRepo repository.MemberRepository, tokens security.TokenManager) AuthService {
	return &authService{
		memberRepo: memberRepo,
		tokens:     tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	logger.EnterMethod("authService.Login", "email", email)

	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "email", email)
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "email", email)
		return "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(member.ID, member.Email, member.Role)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err)
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(member.ID, member.Email)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err)
		return "", "", err
	}

	logger.ExitMethod("authService.Login", "memberID", member.ID)
	return access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	logger.EnterMethod("authService.Refresh")

	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		logger.ExitMethodWithError("authService.Refresh", err)
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		logger.ExitMethodWithError("authService.Refresh", security.ErrWrongTokenType)
		return "", "", security.ErrWrongTokenType
	}

	// Roles can change between refreshes, so reload the member rather
	// than trusting the claim.
	member, err := s.memberRepo.GetByID(ctx, claims.MemberID)
	if err != nil {
		logger.ExitMethodWithError("authService.Refresh", err, "memberID", claims.MemberID)
		return "", "", err
	}

	access, err := s.tokens.GenerateAccessToken(member.ID, member.Email, member.Role)
	if err != nil {
		logger.ExitMethodWithError("authService.Refresh", err)
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(member.ID, member.Email)
	if err != nil {
		logger.ExitMethodWithError("authService.Refresh", err)
		return "", "", err
	}

	logger.ExitMethod("authService.Refresh", "memberID", member.ID)
	return access, refresh, nil
}
