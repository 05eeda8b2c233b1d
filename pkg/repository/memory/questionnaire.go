package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type questionRepository struct {
	mu        sync.RWMutex
	questions map[types.QuestionID]*model.Question
}

func newQuestionRepository() *questionRepository {
	return &questionRepository{
		questions: make(map[types.QuestionID]*model.Question),
	}
}

func copyQuestion(q *model.Question) *model.Question {
	copied := *q
	return &copied
}

func (r *questionRepository) Create(ctx context.Context, q *model.Question) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyQuestion(q)
	if created.ID == "" {
		created.ID = types.NewQuestionID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.questions[created.ID] = created
	return copyQuestion(created), nil
}

func (r *questionRepository) Get(ctx context.Context, id types.QuestionID) (*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, exists := r.questions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "question not found", goerr.V("id", id))
	}

	return copyQuestion(q), nil
}

func (r *questionRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var questions []*model.Question
	for _, q := range r.questions {
		if q.ProjectID == projectID {
			questions = append(questions, copyQuestion(q))
		}
	}

	sort.Slice(questions, func(i, j int) bool {
		if questions[i].Order != questions[j].Order {
			return questions[i].Order < questions[j].Order
		}
		return questions[i].CreatedAt.Before(questions[j].CreatedAt)
	})

	return questions, nil
}

func (r *questionRepository) Update(ctx context.Context, q *model.Question) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.questions[q.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "question not found", goerr.V("id", q.ID))
	}

	updated := copyQuestion(q)
	updated.ProjectID = existing.ProjectID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.questions[updated.ID] = updated
	return copyQuestion(updated), nil
}

func (r *questionRepository) Delete(ctx context.Context, id types.QuestionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.questions[id]; !exists {
		return goerr.Wrap(ErrNotFound, "question not found", goerr.V("id", id))
	}

	delete(r.questions, id)
	return nil
}

type answerRepository struct {
	mu      sync.RWMutex
	answers map[types.AnswerID]*model.Answer
}

func newAnswerRepository() *answerRepository {
	return &answerRepository{
		answers: make(map[types.AnswerID]*model.Answer),
	}
}

func copyAnswer(a *model.Answer) *model.Answer {
	copied := *a
	return &copied
}

func (r *answerRepository) Create(ctx context.Context, a *model.Answer) (*model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyAnswer(a)
	if created.ID == "" {
		created.ID = types.NewAnswerID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.answers[created.ID] = created
	return copyAnswer(created), nil
}

func (r *answerRepository) Get(ctx context.Context, id types.AnswerID) (*model.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.answers[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "answer not found", goerr.V("id", id))
	}

	return copyAnswer(a), nil
}

func (r *answerRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var answers []*model.Answer
	for _, a := range r.answers {
		if a.ProjectID == projectID {
			answers = append(answers, copyAnswer(a))
		}
	}

	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.After(answers[j].CreatedAt)
	})

	return answers, nil
}

func (r *answerRepository) FindByQuestion(ctx context.Context, questionID types.QuestionID) (*model.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.answers {
		if a.QuestionID == questionID {
			return copyAnswer(a), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "answer not found", goerr.V("question_id", questionID))
}

func (r *answerRepository) Update(ctx context.Context, a *model.Answer) (*model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.answers[a.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "answer not found", goerr.V("id", a.ID))
	}

	updated := copyAnswer(a)
	updated.ProjectID = existing.ProjectID
	updated.QuestionID = existing.QuestionID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.answers[updated.ID] = updated
	return copyAnswer(updated), nil
}

func (r *answerRepository) Delete(ctx context.Context, id types.AnswerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.answers[id]; !exists {
		return goerr.Wrap(ErrNotFound, "answer not found", goerr.V("id", id))
	}

	delete(r.answers, id)
	return nil
}
