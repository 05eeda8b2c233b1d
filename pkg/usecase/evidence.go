package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/utils/errutil"
)

// DownloadURLTTL is the lifetime of signed evidence download URLs.
const DownloadURLTTL = 15 * time.Minute

type EvidenceUseCase struct {
	repo    interfaces.Repository
	guard   *phaseGuard
	storage interfaces.StorageClient
}

func NewEvidenceUseCase(repo interfaces.Repository, guard *phaseGuard, storage interfaces.StorageClient) *EvidenceUseCase {
	return &EvidenceUseCase{
		repo:    repo,
		guard:   guard,
		storage: storage,
	}
}

// UploadInput carries the metadata and content of an evidence upload.
type UploadInput struct {
	ProjectID         types.ProjectID
	BoundaryControlID *types.BoundaryControlID
	ControlID         types.ControlID
	Title             string
	Description       string
	Filename          string
	ContentType       string
	Body              io.Reader
}

// Upload stores the attachment blob first and the evidence record second.
// When the record insert fails the blob is deleted again; the cleanup is
// best effort and its failure is only logged.
func (uc *EvidenceUseCase) Upload(ctx context.Context, input *UploadInput, confirmed bool) (*model.Evidence, error) {
	if uc.storage == nil {
		return nil, goerr.New("storage is not configured")
	}
	if input.Title == "" {
		return nil, goerr.New("evidence title is required", goerr.T(TagInvalidInput))
	}
	if input.Filename == "" {
		return nil, goerr.New("evidence filename is required", goerr.T(TagInvalidInput))
	}

	if input.BoundaryControlID != nil {
		bc, err := uc.repo.BoundaryControl().Get(ctx, *input.BoundaryControlID)
		if err != nil {
			return nil, err
		}
		input.ProjectID = bc.ProjectID
		input.ControlID = bc.ControlID
	}

	id := types.NewEvidenceID()
	key := fmt.Sprintf("evidence/%s/%s/%s", input.ProjectID, id, input.Filename)

	size, err := uc.storage.Put(ctx, key, input.Body, input.ContentType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store evidence attachment", goerr.V("key", key))
	}

	ev := &model.Evidence{
		ID:                id,
		ProjectID:         input.ProjectID,
		BoundaryControlID: input.BoundaryControlID,
		ControlID:         input.ControlID,
		Title:             input.Title,
		Description:       input.Description,
		File: &model.FileRef{
			Key:         key,
			Filename:    input.Filename,
			ContentType: input.ContentType,
			Size:        size,
		},
		UploadedBy: auth.UserIDFromContext(ctx),
	}

	var created *model.Evidence
	err = uc.guard.run(ctx, input.ProjectID, types.PhaseEvidenceGaps, confirmed, func(ctx context.Context) error {
		var err error
		created, err = uc.repo.Evidence().Create(ctx, ev)
		return err
	})
	if err != nil {
		if delErr := uc.storage.Delete(ctx, key); delErr != nil {
			errutil.Handle(ctx, delErr, "failed to clean up orphaned evidence attachment")
		}
		return nil, err
	}

	return created, nil
}

func (uc *EvidenceUseCase) Get(ctx context.Context, id types.EvidenceID) (*model.Evidence, error) {
	return uc.repo.Evidence().Get(ctx, id)
}

func (uc *EvidenceUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Evidence, error) {
	return uc.repo.Evidence().ListByProject(ctx, projectID)
}

func (uc *EvidenceUseCase) ListByBoundaryControl(ctx context.Context, bcID types.BoundaryControlID) ([]*model.Evidence, error) {
	return uc.repo.Evidence().ListByBoundaryControl(ctx, bcID)
}

// DownloadURL returns a time-limited signed URL for the attachment.
func (uc *EvidenceUseCase) DownloadURL(ctx context.Context, id types.EvidenceID) (string, error) {
	if uc.storage == nil {
		return "", goerr.New("storage is not configured")
	}

	ev, err := uc.repo.Evidence().Get(ctx, id)
	if err != nil {
		return "", err
	}
	if ev.File == nil {
		return "", goerr.New("evidence has no attachment", goerr.V(EvidenceIDKey, id))
	}

	url, err := uc.storage.SignedURL(ctx, ev.File.Key, DownloadURLTTL)
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign download URL", goerr.V(EvidenceIDKey, id))
	}
	return url, nil
}

func (uc *EvidenceUseCase) Update(ctx context.Context, ev *model.Evidence, confirmed bool) (*model.Evidence, error) {
	if ev.Title == "" {
		return nil, goerr.New("evidence title is required", goerr.T(TagInvalidInput))
	}

	existing, err := uc.repo.Evidence().Get(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(ctx, existing.UploadedBy); err != nil {
		return nil, err
	}

	// The attachment is immutable; replace the evidence to change the file.
	ev.File = existing.File

	var updated *model.Evidence
	err = uc.guard.run(ctx, existing.ProjectID, types.PhaseEvidenceGaps, confirmed, func(ctx context.Context) error {
		var err error
		updated, err = uc.repo.Evidence().Update(ctx, ev)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *EvidenceUseCase) Delete(ctx context.Context, id types.EvidenceID, confirmed bool) error {
	existing, err := uc.repo.Evidence().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwnership(ctx, existing.UploadedBy); err != nil {
		return err
	}

	err = uc.guard.run(ctx, existing.ProjectID, types.PhaseEvidenceGaps, confirmed, func(ctx context.Context) error {
		return uc.repo.Evidence().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if existing.File != nil && uc.storage != nil {
		if delErr := uc.storage.Delete(ctx, existing.File.Key); delErr != nil {
			errutil.Handle(ctx, delErr, "failed to delete evidence attachment")
		}
	}

	return nil
}
