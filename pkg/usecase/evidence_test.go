package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/usecase"
)

func TestEvidenceUpload(t *testing.T) {
	t.Run("upload stores the blob and the record", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "evidence")

		created, err := env.uc.Evidence.Upload(ctxAs("user-1"), &usecase.UploadInput{
			ProjectID:   projectID,
			ControlID:   "A.5.1",
			Title:       "Access review report",
			Description: "Q2 review",
			Filename:    "review.pdf",
			ContentType: "application/pdf",
			Body:        strings.NewReader("pdf bytes"),
		}, false)
		gt.NoError(t, err).Required()

		gt.Value(t, created.UploadedBy).Equal(types.UserID("user-1"))
		gt.Value(t, created.File).NotNil()
		gt.Value(t, created.File.Size).Equal(int64(len("pdf bytes")))

		blob, contentType, ok := env.storage.Get(created.File.Key)
		gt.Bool(t, ok).True()
		gt.Value(t, string(blob)).Equal("pdf bytes")
		gt.Value(t, contentType).Equal("application/pdf")
	})

	t.Run("upload against an association inherits project and control", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCatalog(t)
		projectID := env.createProject(t, "evidence")
		boundaryID := env.createBoundary(t, projectID, "Core")
		bc, err := env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
			BoundaryID: boundaryID, ControlID: "A.8.7", IsApplicable: true,
		}, false)
		gt.NoError(t, err).Required()

		created, err := env.uc.Evidence.Upload(ctxAs("user-1"), &usecase.UploadInput{
			BoundaryControlID: &bc.ID,
			Title:             "AV deployment inventory",
			Filename:          "inventory.csv",
			ContentType:       "text/csv",
			Body:              strings.NewReader("host,agent\n"),
		}, false)
		gt.NoError(t, err).Required()

		gt.Value(t, created.ProjectID).Equal(projectID)
		gt.Value(t, created.ControlID).Equal(types.ControlID("A.8.7"))
	})

	t.Run("missing title or filename rejected before any storage write", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "evidence")

		_, err := env.uc.Evidence.Upload(ctxAs("user-1"), &usecase.UploadInput{
			ProjectID: projectID, Filename: "f.txt", Body: strings.NewReader("x"),
		}, false)
		gt.Error(t, err)

		_, err = env.uc.Evidence.Upload(ctxAs("user-1"), &usecase.UploadInput{
			ProjectID: projectID, Title: "t", Body: strings.NewReader("x"),
		}, false)
		gt.Error(t, err)
	})

	t.Run("blocked record insert cleans up the stored blob", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "evidence")
		env.completePhase(t, projectID, types.PhaseEvidenceGaps)

		_, err := env.uc.Evidence.Upload(ctxAs("user-1"), &usecase.UploadInput{
			ProjectID:   projectID,
			ControlID:   "A.5.1",
			Title:       "Late evidence",
			Filename:    "late.txt",
			ContentType: "text/plain",
			Body:        strings.NewReader("data"),
		}, false)
		gt.Bool(t, errors.Is(err, usecase.ErrPhaseCompleted)).True()

		// No record, no orphaned blob.
		listed, err := env.repo.Evidence().ListByProject(context.Background(), projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(0)
		gt.Array(t, env.storage.Keys()).Length(0)
	})
}

func TestEvidenceDownloadURL(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.createProject(t, "evidence")

	created, err := env.uc.Evidence.Upload(ctxAs("user-1"), &usecase.UploadInput{
		ProjectID: projectID, ControlID: "A.5.1", Title: "doc",
		Filename: "doc.txt", ContentType: "text/plain", Body: strings.NewReader("x"),
	}, false)
	gt.NoError(t, err).Required()

	url, err := env.uc.Evidence.DownloadURL(context.Background(), created.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(url, created.File.Key)).True()
}

func TestEvidenceOwnership(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.createProject(t, "evidence")

	created, err := env.uc.Evidence.Upload(ctxAs("user-1"), &usecase.UploadInput{
		ProjectID: projectID, ControlID: "A.5.1", Title: "mine",
		Filename: "mine.txt", ContentType: "text/plain", Body: strings.NewReader("x"),
	}, false)
	gt.NoError(t, err).Required()

	t.Run("another user cannot update", func(t *testing.T) {
		created.Title = "stolen"
		_, err := env.uc.Evidence.Update(ctxAs("user-2"), created, false)
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
	})

	t.Run("another user cannot delete", func(t *testing.T) {
		err := env.uc.Evidence.Delete(ctxAs("user-2"), created.ID, false)
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
	})

	t.Run("the owner can delete, removing the blob", func(t *testing.T) {
		key := created.File.Key
		gt.NoError(t, env.uc.Evidence.Delete(ctxAs("user-1"), created.ID, false))

		_, _, ok := env.storage.Get(key)
		gt.Bool(t, ok).False()
	})
}
