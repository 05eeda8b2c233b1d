package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/repository/firestore"
	"github.com/secmon-lab/themis/pkg/repository/memory"
)

type repoFactory func(t *testing.T) interfaces.Repository

func newMemoryRepo(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

// newFirestoreRepo connects to the Firestore instance named by the
// environment, using a unique collection prefix so concurrent test runs do
// not collide. Tests are skipped when FIRESTORE_PROJECT_ID is not set.
func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("FIRESTORE_DATABASE_ID")

	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(context.Background(), projectID, databaseID,
		firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()

	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Logf("failed to close firestore repository: %v", err)
		}
	})

	return repo
}
