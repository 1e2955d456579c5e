package services

import (
	"fmt"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/helpers"
)

// Grade scores a submission against the quiz's questions. Every question gets
// an answer record; missing or null selections are stored as
// models.UnansweredSelection and count as incorrect.
func Grade(quiz *models.Quiz, req *dto.SubmitQuizRequest) (*models.QuizResult, error) {
	if len(req.Answers) > len(quiz.Questions) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("Quiz has %d questions but %d answers were submitted", len(quiz.Questions), len(req.Answers)))
	}

	answers := make([]models.Answer, len(quiz.Questions))
	score := 0
	for i, q := range quiz.Questions {
		answer := models.Answer{QuestionIndex: i, SelectedAnswer: models.UnansweredSelection}
		if i < len(req.Answers) {
			submitted := req.Answers[i]
			if submitted.SelectedAnswer != nil {
				answer.SelectedAnswer = *submitted.SelectedAnswer
			}
			if submitted.TimeTaken != nil {
				answer.TimeTaken = *submitted.TimeTaken
			}
		}
		answer.IsCorrect = answer.SelectedAnswer != models.UnansweredSelection && answer.SelectedAnswer == q.CorrectAnswer
		if answer.IsCorrect {
			score++
		}
		answers[i] = answer
	}

	totalTime := 0
	if req.TotalTimeTaken != nil {
		totalTime = *req.TotalTimeTaken
	}

	return &models.QuizResult{
		UserID:         quiz.UserID,
		QuizID:         quiz.ID,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		Percentage:     helpers.Percentage(score, len(quiz.Questions)),
		Answers:        answers,
		TotalTimeTaken: totalTime,
	}, nil
}
