package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Question is one compliance questionnaire question within a project.
type Question struct {
	ID        types.QuestionID `json:"id"`
	ProjectID types.ProjectID  `json:"project_id"`
	Text      string           `json:"text"`
	Category  string           `json:"category"`
	Order     int              `json:"order"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Answer records the response to a questionnaire question.
type Answer struct {
	ID         types.AnswerID    `json:"id"`
	ProjectID  types.ProjectID   `json:"project_id"`
	QuestionID types.QuestionID  `json:"question_id"`
	Value      types.AnswerValue `json:"value"`
	Notes      string            `json:"notes"`
	UserID     types.UserID      `json:"user_id"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
