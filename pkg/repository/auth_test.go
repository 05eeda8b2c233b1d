package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
)

func runAuthRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	t.Run("PutToken and GetToken", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token, err := auth.NewToken("user-123", time.Now().UTC())
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.PutToken(ctx, token)).Required()

		got, err := repo.GetToken(ctx, token.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(token.ID)
		gt.Value(t, got.Secret).Equal(token.Secret)
		gt.Value(t, got.UserID).Equal(token.UserID)
		gt.Bool(t, got.ExpiresAt.Equal(token.ExpiresAt)).True()
	})

	t.Run("GetToken for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetToken(ctx, "no-such-token")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("DeleteToken removes the session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token, err := auth.NewToken("user-123", time.Now().UTC())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.PutToken(ctx, token)).Required()

		gt.NoError(t, repo.DeleteToken(ctx, token.ID))

		_, err = repo.GetToken(ctx, token.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestAuthRepository_Memory(t *testing.T) {
	runAuthRepositoryTest(t, newMemoryRepo)
}

func TestAuthRepository_Firestore(t *testing.T) {
	runAuthRepositoryTest(t, newFirestoreRepo)
}
