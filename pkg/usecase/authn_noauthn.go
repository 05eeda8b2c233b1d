package usecase

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// NoAuthnUseCase is the development mode: every request is attributed to the
// anonymous user and token checks always succeed.
type NoAuthnUseCase struct{}

var _ AuthUseCaseInterface = &NoAuthnUseCase{}

func NewNoAuthnUseCase() *NoAuthnUseCase {
	return &NoAuthnUseCase{}
}

func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}

func (uc *NoAuthnUseCase) IssueToken(ctx context.Context, userID types.UserID) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}
