package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// TokenID identifies a session token
type TokenID string

// TokenSecret is the bearer secret paired with a token ID
type TokenSecret string

// String returns the string representation of TokenID
func (id TokenID) String() string {
	return string(id)
}

// Validate checks that the token ID is non-empty.
func (id TokenID) Validate() error {
	if id == "" {
		return goerr.New("token ID cannot be empty")
	}
	return nil
}

// AnonymousUserID is the user recorded for requests in no-auth mode.
const AnonymousUserID types.UserID = "anonymous"

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Token is an opaque session token. Session establishment itself is
// delegated to the identity provider; this only covers validating the
// resulting bearer credentials and stamping user IDs onto records.
type Token struct {
	ID        TokenID
	Secret    TokenSecret
	UserID    types.UserID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewToken issues a token for the user with a random ID and secret.
func NewToken(userID types.UserID, now time.Time) (*Token, error) {
	id, err := randomHex(16)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate token ID")
	}
	secret, err := randomHex(32)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate token secret")
	}

	return &Token{
		ID:        TokenID(id),
		Secret:    TokenSecret(secret),
		UserID:    userID,
		ExpiresAt: now.Add(DefaultTokenTTL),
		CreatedAt: now,
	}, nil
}

// NewAnonymousUser returns the token used for no-auth mode.
func NewAnonymousUser() *Token {
	return &Token{
		ID:     "anonymous",
		UserID: AnonymousUserID,
	}
}

// Validate checks the structural integrity of the token.
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if t.UserID == "" {
		return goerr.New("token user ID cannot be empty")
	}
	return nil
}

// ValidateSecret checks the presented secret and the expiry.
func (t *Token) ValidateSecret(secret TokenSecret, now time.Time) error {
	if subtle.ConstantTimeCompare([]byte(t.Secret), []byte(secret)) != 1 {
		return goerr.New("token secret mismatch")
	}
	if !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt) {
		return goerr.New("token expired", goerr.V("expired_at", t.ExpiresAt))
	}
	return nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

type ctxTokenKey struct{}

// ContextWithToken stores the token in the context.
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext retrieves the token from the context, if any.
func TokenFromContext(ctx context.Context) *Token {
	token, _ := ctx.Value(ctxTokenKey{}).(*Token)
	return token
}

// UserIDFromContext returns the authenticated user ID, or AnonymousUserID
// when no token is present.
func UserIDFromContext(ctx context.Context) types.UserID {
	if token := TokenFromContext(ctx); token != nil {
		return token.UserID
	}
	return AnonymousUserID
}
