package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func runQuestionnaireRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	projectID := types.NewProjectID()

	t.Run("questions come back in display order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, q := range []struct {
			text  string
			order int
		}{
			{"Do you have an incident response plan?", 2},
			{"Is there a designated security officer?", 1},
			{"Are backups tested quarterly?", 3},
		} {
			_, err := repo.Question().Create(ctx, &model.Question{
				ProjectID: projectID,
				Text:      q.text,
				Category:  "governance",
				Order:     q.order,
			})
			gt.NoError(t, err).Required()
		}

		questions, err := repo.Question().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, questions).Length(3)
		gt.Value(t, questions[0].Order).Equal(1)
		gt.Value(t, questions[1].Order).Equal(2)
		gt.Value(t, questions[2].Order).Equal(3)
	})

	t.Run("question update keeps the project binding", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Question().Create(ctx, &model.Question{
			ProjectID: projectID, Text: "original", Order: 1,
		})
		gt.NoError(t, err).Required()

		created.Text = "revised"
		created.ProjectID = types.NewProjectID()
		updated, err := repo.Question().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Text).Equal("revised")
		gt.Value(t, updated.ProjectID).Equal(projectID)
	})

	t.Run("FindByQuestion", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		question, err := repo.Question().Create(ctx, &model.Question{
			ProjectID: projectID, Text: "Is MFA enforced?", Order: 1,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Answer().FindByQuestion(ctx, question.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		created, err := repo.Answer().Create(ctx, &model.Answer{
			ProjectID:  projectID,
			QuestionID: question.ID,
			Value:      types.AnswerPartial,
			Notes:      "enforced for admins only",
			UserID:     "user-1",
		})
		gt.NoError(t, err).Required()

		found, err := repo.Answer().FindByQuestion(ctx, question.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, found.ID).Equal(created.ID)
		gt.Value(t, found.Value).Equal(types.AnswerPartial)
	})

	t.Run("answer update keeps identity fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		question, err := repo.Question().Create(ctx, &model.Question{
			ProjectID: projectID, Text: "Encrypted at rest?", Order: 1,
		})
		gt.NoError(t, err).Required()

		created, err := repo.Answer().Create(ctx, &model.Answer{
			ProjectID: projectID, QuestionID: question.ID,
			Value: types.AnswerNo, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		created.Value = types.AnswerYes
		created.UserID = "user-2"
		updated, err := repo.Answer().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Value).Equal(types.AnswerYes)
		gt.Value(t, updated.UserID).Equal(types.UserID("user-1"))
		gt.Value(t, updated.QuestionID).Equal(question.ID)
	})

	t.Run("deleting the answer reopens the question", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		question, err := repo.Question().Create(ctx, &model.Question{
			ProjectID: projectID, Text: "Access reviews done?", Order: 1,
		})
		gt.NoError(t, err).Required()

		created, err := repo.Answer().Create(ctx, &model.Answer{
			ProjectID: projectID, QuestionID: question.ID,
			Value: types.AnswerYes, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Answer().Delete(ctx, created.ID))

		_, err = repo.Answer().FindByQuestion(ctx, question.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestQuestionnaireRepository_Memory(t *testing.T) {
	runQuestionnaireRepositoryTest(t, newMemoryRepo)
}

func TestQuestionnaireRepository_Firestore(t *testing.T) {
	runQuestionnaireRepositoryTest(t, newFirestoreRepo)
}
