package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/middleware"
	"github.com/bankterm/terminal_backend/internal/platform/config"
	"github.com/bankterm/terminal_backend/internal/utils"
)

// ErrInvalidCredentials is returned when the username or password does not match.
var ErrInvalidCredentials = errors.New("invalid username or password")

// authService verifies credentials and issues access tokens.
type authService struct {
	userRepo portsrepo.UserReader
	cfg      *config.Config
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo portsrepo.UserReader, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Authenticate verifies the credentials and returns a signed JWT. A missing
// user and a wrong password produce the same error.
func (s *authService) Authenticate(ctx context.Context, username, password string) (string, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authentication failed: unknown username", slog.String("username", username))
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Authentication failed: password mismatch", slog.String("user_id", user.UserID))
		return "", "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
		return "", "", err
	}

	return token, user.UserID, nil
}
