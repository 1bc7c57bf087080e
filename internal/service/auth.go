package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/auth"
	"github.com/umalmyha/crm/internal/config"
	appErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

type AuthService interface {
	Signup(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password, fingerprint string, now time.Time) (*auth.AccessToken, *model.RefreshToken, error)
	Refresh(ctx context.Context, token, fingerprint string, now time.Time) (*auth.AccessToken, *model.RefreshToken, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	signer      *auth.Signer
	rfrTokenCfg *config.RefreshTokenCfg
	transactor  transactor.Transactor
	userRps     repository.UserRepository
	rfrTokenRps repository.RefreshTokenRepository
}

func NewAuthService(
	signer *auth.Signer,
	rfrTokenCfg *config.RefreshTokenCfg,
	transactor transactor.Transactor,
	userRps repository.UserRepository,
	rfrTokenRps repository.RefreshTokenRepository,
) AuthService {
	return &authService{
		signer:      signer,
		rfrTokenCfg: rfrTokenCfg,
		transactor:  transactor,
		userRps:     userRps,
		rfrTokenRps: rfrTokenRps,
	}
}

func (s *authService) Signup(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := s.userRps.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, appErrors.NewBusinessErr("email", fmt.Sprintf("user with email %s already exists", email))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, appErrors.NewBusinessErr("password", err.Error())
		}
		return nil, err
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{model.RoleUser},
	}

	if err := s.userRps.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password, fingerprint string, now time.Time) (*auth.AccessToken, *model.RefreshToken, error) {
	u, err := s.userRps.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if u == nil {
		return nil, nil, echo.ErrUnauthorized
	}

	matches, err := auth.ComparePassword(u.PasswordHash, password)
	if err != nil {
		return nil, nil, err
	}

	if !matches {
		return nil, nil, echo.ErrUnauthorized
	}

	jwt, err := s.signer.Sign(u.Email, u.Roles, now)
	if err != nil {
		return nil, nil, err
	}

	rfrToken := s.newRefreshToken(u.ID, fingerprint, now)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		tokens, err := s.rfrTokenRps.FindTokensByUserID(ctx, u.ID)
		if err != nil {
			return err
		}

		if len(tokens) >= s.rfrTokenCfg.MaxCount {
			if err := s.rfrTokenRps.DeleteByUserID(ctx, u.ID); err != nil {
				return err
			}
		}

		return s.rfrTokenRps.Create(ctx, rfrToken)
	})
	if err != nil {
		return nil, nil, err
	}

	return jwt, rfrToken, nil
}

func (s *authService) Refresh(ctx context.Context, token, fingerprint string, now time.Time) (*auth.AccessToken, *model.RefreshToken, error) {
	var jwt *auth.AccessToken
	var rfrToken *model.RefreshToken
	var rejection error

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.rfrTokenRps.FindByID(ctx, token)
		if err != nil {
			return err
		}

		if existing == nil {
			rejection = echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
			return nil
		}

		// used token is removed even if it is rejected afterwards
		if err := s.rfrTokenRps.DeleteByID(ctx, existing.ID); err != nil {
			return err
		}

		if existing.Fingerprint != fingerprint {
			rejection = echo.NewHTTPError(http.StatusUnauthorized, "refresh token was issued for another client")
			return nil
		}

		if existing.IsExpired(now) {
			rejection = echo.NewHTTPError(http.StatusUnauthorized, "refresh token is expired")
			return nil
		}

		u, err := s.userRps.FindByID(ctx, existing.UserID)
		if err != nil {
			return err
		}

		if u == nil {
			rejection = echo.NewHTTPError(http.StatusUnauthorized, "refresh token owner doesn't exist")
			return nil
		}

		jwt, err = s.signer.Sign(u.Email, u.Roles, now)
		if err != nil {
			return err
		}

		rfrToken = s.newRefreshToken(u.ID, fingerprint, now)
		return s.rfrTokenRps.Create(ctx, rfrToken)
	})
	if err != nil {
		return nil, nil, err
	}

	if rejection != nil {
		return nil, nil, rejection
	}
	return jwt, rfrToken, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.rfrTokenRps.DeleteByID(ctx, token)
}

func (s *authService) newRefreshToken(userID, fingerprint string, now time.Time) *model.RefreshToken {
	return &model.RefreshToken{
		ID:          uuid.NewString(),
		UserID:      userID,
		Fingerprint: fingerprint,
		ExpiresIn:   int(s.rfrTokenCfg.TimeToLive.Seconds()),
		CreatedAt:   now,
	}
}
