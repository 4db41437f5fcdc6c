package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
)

// apiTokenPrefix marks personal API tokens so they are recognizable in
// request headers and in leaked-credential scans.
const apiTokenPrefix = "gba_"

// apiTokenService manages personal API tokens. The raw token is returned
// exactly once at creation; only its SHA-256 digest is stored, which also
// serves as the lookup key during validation. Tokens carry 32 bytes of
// entropy, so the unsalted digest cannot be brute forced.
type apiTokenService struct {
	tokenRepo repositories.APITokenRepository
	userSvc   portssvc.UserSvcFacade
}

// NewAPITokenService creates a new API token service.
func NewAPITokenService(tokenRepo repositories.APITokenRepository, userSvc portssvc.UserSvcFacade) portssvc.APITokenSvc {
	return &apiTokenService{tokenRepo: tokenRepo, userSvc: userSvc}
}

var _ portssvc.APITokenSvc = (*apiTokenService)(nil)

func (s *apiTokenService) CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	if userID == "" {
		return "", nil, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	if name == "" {
		return "", nil, fmt.Errorf("%w: token name is required", apperrors.ErrValidation)
	}

	raw, err := newRawAPIToken(32)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	var expiresAt *time.Time
	if expiresIn != nil {
		expiry := time.Now().Add(*expiresIn)
		expiresAt = &expiry
	}

	apiToken := &domain.APIToken{
		UserID:    userID,
		Name:      name,
		TokenHash: hashAPIToken(raw),
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepo.Create(ctx, apiToken); err != nil {
		return "", nil, fmt.Errorf("failed to save token: %w", err)
	}

	return raw, apiToken, nil
}

func (s *apiTokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	tokens, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

func (s *apiTokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	if userID == "" || tokenID == "" {
		return fmt.Errorf("%w: user ID and token ID are required", apperrors.ErrValidation)
	}

	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("failed to find token: %w", err)
	}
	// Another user's token reads as not-found, never as forbidden.
	if token.UserID != userID {
		return apperrors.ErrNotFound
	}

	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *apiTokenService) RevokeAllTokens(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	if err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke all tokens: %w", err)
	}
	return nil
}

func (s *apiTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	if tokenString == "" {
		return nil, apperrors.ErrUnauthorized
	}

	token, err := s.tokenRepo.FindByToken(ctx, hashAPIToken(tokenString))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}

	if token.IsExpired() {
		// Expired tokens are cleaned up on first use.
		if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
			logger := middleware.GetLoggerFromCtx(ctx)
			logger.WarnContext(ctx, "Failed to delete expired token",
				slog.String("token_id", token.ID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("%w: token has expired", apperrors.ErrUnauthorized)
	}

	// A failed last-used update does not invalidate the token.
	token.UpdateLastUsed()
	if err := s.tokenRepo.Update(ctx, token); err != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.WarnContext(ctx, "Failed to update token last-used timestamp",
			slog.String("token_id", token.ID), slog.String("error", err.Error()))
	}

	user, err := s.userSvc.GetUserByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}
	return user, nil
}

func hashAPIToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func newRawAPIToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return apiTokenPrefix + base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b), nil
}
