package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/app/repositories"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
	"github.com/oguzk/interntrack/internal/pkg/auth"
	"github.com/oguzk/interntrack/internal/pkg/logger"
)

const passwordResetTokenTTL = time.Hour

// AuthService handles authentication and credential management
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. Disabled accounts are
// rejected even with valid credentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login timestamp")
	}

	return tokens, nil
}

// RefreshTokens exchanges a valid refresh token for a new token pair.
// The consumed token is invalidated.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.Get(ctx, refreshToken, time.Now())
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates a refresh token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.Delete(ctx, refreshToken)
}

// ChangePassword changes the password of an authenticated user after
// verifying the current one. All refresh tokens are revoked.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.tokenRepo.DeleteForUser(ctx, userID)
}

// ForgotPassword starts a password reset. The response is identical whether
// or not the email is known, so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Debug().Str("email", email).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.New().String()
	expiry := time.Now().Add(passwordResetTokenTTL)

	if err := s.userRepo.SetPasswordResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	// Delivery is out of band; operators pick the token up from the logs.
	logger.Info().Int64("userID", user.ID).Str("resetToken", token).Msg("Password reset token issued")
	return nil
}

// ResetPassword completes a password reset using a previously issued token
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByPasswordResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		return err
	}

	if user.PasswordResetExpiry == nil || user.PasswordResetExpiry.Before(time.Now()) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	return s.tokenRepo.DeleteForUser(ctx, user.ID)
}

// CleanupExpiredRefreshTokens purges refresh tokens past their expiry
func (s *AuthService) CleanupExpiredRefreshTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx, time.Now())
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Save(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
