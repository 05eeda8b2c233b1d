package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
)

type tokenStore struct {
	mu     sync.RWMutex
	tokens map[auth.TokenID]*auth.Token
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		tokens: make(map[auth.TokenID]*auth.Token),
	}
}

func (m *Memory) PutToken(ctx context.Context, token *auth.Token) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}

	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	copied := *token
	m.tokens.tokens[token.ID] = &copied
	return nil
}

func (m *Memory) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	if err := tokenID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid token ID")
	}

	m.tokens.mu.RLock()
	defer m.tokens.mu.RUnlock()

	token, exists := m.tokens.tokens[tokenID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "token not found", goerr.V("token_id", tokenID))
	}

	copied := *token
	return &copied, nil
}

func (m *Memory) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := tokenID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token ID")
	}

	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	delete(m.tokens.tokens, tokenID)
	return nil
}
