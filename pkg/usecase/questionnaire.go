package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type QuestionnaireUseCase struct {
	repo  interfaces.Repository
	guard *phaseGuard
}

func NewQuestionnaireUseCase(repo interfaces.Repository, guard *phaseGuard) *QuestionnaireUseCase {
	return &QuestionnaireUseCase{repo: repo, guard: guard}
}

func (uc *QuestionnaireUseCase) CreateQuestion(ctx context.Context, q *model.Question, confirmed bool) (*model.Question, error) {
	if q.Text == "" {
		return nil, goerr.New("question text is required", goerr.T(TagInvalidInput))
	}

	var created *model.Question
	err := uc.guard.run(ctx, q.ProjectID, types.PhaseQuestionnaire, confirmed, func(ctx context.Context) error {
		var err error
		created, err = uc.repo.Question().Create(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *QuestionnaireUseCase) ListQuestions(ctx context.Context, projectID types.ProjectID) ([]*model.Question, error) {
	return uc.repo.Question().ListByProject(ctx, projectID)
}

func (uc *QuestionnaireUseCase) UpdateQuestion(ctx context.Context, q *model.Question, confirmed bool) (*model.Question, error) {
	if q.Text == "" {
		return nil, goerr.New("question text is required", goerr.T(TagInvalidInput))
	}

	existing, err := uc.repo.Question().Get(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	var updated *model.Question
	err = uc.guard.run(ctx, existing.ProjectID, types.PhaseQuestionnaire, confirmed, func(ctx context.Context) error {
		var err error
		updated, err = uc.repo.Question().Update(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *QuestionnaireUseCase) DeleteQuestion(ctx context.Context, id types.QuestionID, confirmed bool) error {
	existing, err := uc.repo.Question().Get(ctx, id)
	if err != nil {
		return err
	}

	return uc.guard.run(ctx, existing.ProjectID, types.PhaseQuestionnaire, confirmed, func(ctx context.Context) error {
		if answer, err := uc.repo.Answer().FindByQuestion(ctx, id); err == nil {
			if err := uc.repo.Answer().Delete(ctx, answer.ID); err != nil {
				return goerr.Wrap(err, "failed to delete answer of question", goerr.V("question_id", id))
			}
		} else if !errors.Is(err, interfaces.ErrNotFound) {
			return err
		}
		return uc.repo.Question().Delete(ctx, id)
	})
}

// Answer records or replaces the answer for a question. At most one answer
// per question is kept.
func (uc *QuestionnaireUseCase) Answer(ctx context.Context, questionID types.QuestionID, value types.AnswerValue, notes string, confirmed bool) (*model.Answer, error) {
	if !value.IsValid() {
		return nil, goerr.New("invalid answer value", goerr.T(TagInvalidInput), goerr.V("value", value))
	}

	question, err := uc.repo.Question().Get(ctx, questionID)
	if err != nil {
		return nil, err
	}

	var saved *model.Answer
	err = uc.guard.run(ctx, question.ProjectID, types.PhaseQuestionnaire, confirmed, func(ctx context.Context) error {
		existing, err := uc.repo.Answer().FindByQuestion(ctx, questionID)
		switch {
		case err == nil:
			existing.Value = value
			existing.Notes = notes
			saved, err = uc.repo.Answer().Update(ctx, existing)
			return err
		case errors.Is(err, interfaces.ErrNotFound):
			saved, err = uc.repo.Answer().Create(ctx, &model.Answer{
				ProjectID:  question.ProjectID,
				QuestionID: questionID,
				Value:      value,
				Notes:      notes,
				UserID:     auth.UserIDFromContext(ctx),
			})
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (uc *QuestionnaireUseCase) ListAnswers(ctx context.Context, projectID types.ProjectID) ([]*model.Answer, error) {
	return uc.repo.Answer().ListByProject(ctx, projectID)
}

func (uc *QuestionnaireUseCase) DeleteAnswer(ctx context.Context, id types.AnswerID, confirmed bool) error {
	existing, err := uc.repo.Answer().Get(ctx, id)
	if err != nil {
		return err
	}

	return uc.guard.run(ctx, existing.ProjectID, types.PhaseQuestionnaire, confirmed, func(ctx context.Context) error {
		return uc.repo.Answer().Delete(ctx, id)
	})
}
