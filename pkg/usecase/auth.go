package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// AuthUseCaseInterface abstracts session token handling so the HTTP layer
// works identically with real tokens and the no-auth mode.
type AuthUseCaseInterface interface {
	IssueToken(ctx context.Context, userID types.UserID) (*auth.Token, error)
	ValidateToken(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}

// AuthUseCase validates opaque bearer tokens against the repository. Session
// establishment is delegated to the fronting identity provider; this layer
// only issues and checks the resulting credentials.
type AuthUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

var _ AuthUseCaseInterface = &AuthUseCase{}

func NewAuthUseCase(repo interfaces.Repository, opts ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		repo:  repo,
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithAuthClock overrides the time source, used by tests.
func WithAuthClock(clock func() time.Time) AuthOption {
	return func(uc *AuthUseCase) {
		uc.clock = clock
	}
}

func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// IssueToken creates and stores a fresh token for the user.
func (uc *AuthUseCase) IssueToken(ctx context.Context, userID types.UserID) (*auth.Token, error) {
	if userID == "" {
		return nil, goerr.New("user ID is required")
	}

	token, err := auth.NewToken(userID, uc.clock())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token")
	}
	return token, nil
}

// ValidateToken checks the token ID and secret. Lookup misses and secret
// mismatches collapse into the same error so callers cannot distinguish
// which part failed.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (*auth.Token, error) {
	token, err := uc.repo.GetToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidCredentials, "unknown token")
		}
		return nil, goerr.Wrap(err, "failed to look up token")
	}

	if err := token.ValidateSecret(secret, uc.clock()); err != nil {
		return nil, goerr.Wrap(ErrInvalidCredentials, "token validation failed")
	}

	return token, nil
}

// Logout deletes the token.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return uc.repo.DeleteToken(ctx, tokenID)
}
