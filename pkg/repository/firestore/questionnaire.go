package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type questionDocument struct {
	ID        string    `firestore:"id"`
	ProjectID string    `firestore:"project_id"`
	Text      string    `firestore:"text"`
	Category  string    `firestore:"category"`
	Order     int       `firestore:"order"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toQuestionDocument(q *model.Question) *questionDocument {
	return &questionDocument{
		ID:        q.ID.String(),
		ProjectID: q.ProjectID.String(),
		Text:      q.Text,
		Category:  q.Category,
		Order:     q.Order,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func (d *questionDocument) toModel() *model.Question {
	return &model.Question{
		ID:        types.QuestionID(d.ID),
		ProjectID: types.ProjectID(d.ProjectID),
		Text:      d.Text,
		Category:  d.Category,
		Order:     d.Order,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type questionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newQuestionRepository(client *firestore.Client) *questionRepository {
	return &questionRepository{client: client}
}

func (r *questionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_questions"
	}
	return "questions"
}

func (r *questionRepository) Create(ctx context.Context, q *model.Question) (*model.Question, error) {
	created := *q
	if created.ID == "" {
		created.ID = types.NewQuestionID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toQuestionDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create question", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *questionRepository) Get(ctx context.Context, id types.QuestionID) (*model.Question, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "question not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get question", goerr.V("id", id))
	}

	var questionDoc questionDocument
	if err := doc.DataTo(&questionDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal question", goerr.V("id", id))
	}

	return questionDoc.toModel(), nil
}

// ListByProject returns the questions in display order. The ordered query
// needs the composite index provisioned by the migrate command.
func (r *questionRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Question, error) {
	iter := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID.String()).
		OrderBy("order", firestore.Asc).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var questions []*model.Question
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate questions")
		}

		var questionDoc questionDocument
		if err := doc.DataTo(&questionDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal question")
		}

		questions = append(questions, questionDoc.toModel())
	}

	return questions, nil
}

func (r *questionRepository) Update(ctx context.Context, q *model.Question) (*model.Question, error) {
	docRef := r.client.Collection(r.collection()).Doc(q.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "question not found", goerr.V("id", q.ID))
		}
		return nil, goerr.Wrap(err, "failed to get question", goerr.V("id", q.ID))
	}

	var existing questionDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal question", goerr.V("id", q.ID))
	}

	updated := *q
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toQuestionDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update question", goerr.V("id", q.ID))
	}

	return &updated, nil
}

func (r *questionRepository) Delete(ctx context.Context, id types.QuestionID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "question not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get question", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete question", goerr.V("id", id))
	}

	return nil
}

type answerDocument struct {
	ID         string    `firestore:"id"`
	ProjectID  string    `firestore:"project_id"`
	QuestionID string    `firestore:"question_id"`
	Value      string    `firestore:"value"`
	Notes      string    `firestore:"notes"`
	UserID     string    `firestore:"user_id"`
	CreatedAt  time.Time `firestore:"created_at"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

func toAnswerDocument(a *model.Answer) *answerDocument {
	return &answerDocument{
		ID:         a.ID.String(),
		ProjectID:  a.ProjectID.String(),
		QuestionID: a.QuestionID.String(),
		Value:      a.Value.String(),
		Notes:      a.Notes,
		UserID:     a.UserID.String(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (d *answerDocument) toModel() *model.Answer {
	return &model.Answer{
		ID:         types.AnswerID(d.ID),
		ProjectID:  types.ProjectID(d.ProjectID),
		QuestionID: types.QuestionID(d.QuestionID),
		Value:      types.AnswerValue(d.Value),
		Notes:      d.Notes,
		UserID:     types.UserID(d.UserID),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type answerRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAnswerRepository(client *firestore.Client) *answerRepository {
	return &answerRepository{client: client}
}

func (r *answerRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_answers"
	}
	return "answers"
}

func (r *answerRepository) Create(ctx context.Context, a *model.Answer) (*model.Answer, error) {
	created := *a
	if created.ID == "" {
		created.ID = types.NewAnswerID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toAnswerDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create answer", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *answerRepository) Get(ctx context.Context, id types.AnswerID) (*model.Answer, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "answer not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get answer", goerr.V("id", id))
	}

	var answerDoc answerDocument
	if err := doc.DataTo(&answerDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal answer", goerr.V("id", id))
	}

	return answerDoc.toModel(), nil
}

func (r *answerRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Answer, error) {
	iter := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID.String()).
		Documents(ctx)
	defer iter.Stop()

	var answers []*model.Answer
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate answers")
		}

		var answerDoc answerDocument
		if err := doc.DataTo(&answerDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal answer")
		}

		answers = append(answers, answerDoc.toModel())
	}

	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.After(answers[j].CreatedAt)
	})

	return answers, nil
}

func (r *answerRepository) FindByQuestion(ctx context.Context, questionID types.QuestionID) (*model.Answer, error) {
	iter := r.client.Collection(r.collection()).
		Where("question_id", "==", questionID.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "answer not found", goerr.V("question_id", questionID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query answer", goerr.V("question_id", questionID))
	}

	var answerDoc answerDocument
	if err := doc.DataTo(&answerDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal answer", goerr.V("question_id", questionID))
	}

	return answerDoc.toModel(), nil
}

func (r *answerRepository) Update(ctx context.Context, a *model.Answer) (*model.Answer, error) {
	docRef := r.client.Collection(r.collection()).Doc(a.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "answer not found", goerr.V("id", a.ID))
		}
		return nil, goerr.Wrap(err, "failed to get answer", goerr.V("id", a.ID))
	}

	var existing answerDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal answer", goerr.V("id", a.ID))
	}

	updated := *a
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.QuestionID = types.QuestionID(existing.QuestionID)
	updated.UserID = types.UserID(existing.UserID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toAnswerDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update answer", goerr.V("id", a.ID))
	}

	return &updated, nil
}

func (r *answerRepository) Delete(ctx context.Context, id types.AnswerID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "answer not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get answer", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete answer", goerr.V("id", id))
	}

	return nil
}
