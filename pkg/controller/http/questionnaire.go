package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func questionID(r *http.Request) types.QuestionID {
	return types.QuestionID(chi.URLParam(r, "questionID"))
}

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Questionnaire.ListQuestions(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) {
	var question model.Question
	if err := decodeJSON(r, &question); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	question.ProjectID = projectID(r)

	created, err := s.uc.Questionnaire.CreateQuestion(r.Context(), &question, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var question model.Question
	if err := decodeJSON(r, &question); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	question.ID = questionID(r)

	updated, err := s.uc.Questionnaire.UpdateQuestion(r.Context(), &question, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Questionnaire.DeleteQuestion(r.Context(), questionID(r), confirmed(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

type answerRequest struct {
	Value types.AnswerValue `json:"value"`
	Notes string            `json:"notes"`
}

// answerQuestion upserts the answer for the question; answering twice
// replaces the previous response.
func (s *Server) answerQuestion(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	answer, err := s.uc.Questionnaire.Answer(r.Context(), questionID(r), req.Value, req.Notes, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, answer)
}

func (s *Server) listAnswers(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Questionnaire.ListAnswers(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) deleteAnswer(w http.ResponseWriter, r *http.Request) {
	answerID := types.AnswerID(chi.URLParam(r, "answerID"))
	if err := s.uc.Questionnaire.DeleteAnswer(r.Context(), answerID, confirmed(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
