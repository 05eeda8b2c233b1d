package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// QuestionRepository persists questionnaire questions
type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) (*model.Question, error)
	Get(ctx context.Context, id types.QuestionID) (*model.Question, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Question, error)
	Update(ctx context.Context, q *model.Question) (*model.Question, error)
	Delete(ctx context.Context, id types.QuestionID) error
}

// AnswerRepository persists questionnaire answers
type AnswerRepository interface {
	Create(ctx context.Context, a *model.Answer) (*model.Answer, error)
	Get(ctx context.Context, id types.AnswerID) (*model.Answer, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Answer, error)
	// FindByQuestion returns the answer recorded for the question, or
	// ErrNotFound when it has not been answered.
	FindByQuestion(ctx context.Context, questionID types.QuestionID) (*model.Answer, error)
	Update(ctx context.Context, a *model.Answer) (*model.Answer, error)
	Delete(ctx context.Context, id types.AnswerID) error
}
