package dto

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
)

// GenerateQuizRequest asks for a quiz built from one upload
type GenerateQuizRequest struct {
	UploadID   int64             `json:"uploadId" binding:"required,min=1" example:"3"`
	Subject    string            `json:"subject" binding:"required" example:"Biology"`
	Difficulty models.Difficulty `json:"difficulty,omitempty" binding:"omitempty,oneof=easy medium hard" example:"medium"`
}

// QuizBrief is the quiz reference returned after generation
type QuizBrief struct {
	ID             int64             `json:"id"`
	Subject        string            `json:"subject"`
	Title          string            `json:"title"`
	TotalQuestions int               `json:"totalQuestions"`
	Difficulty     models.Difficulty `json:"difficulty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// GenerateQuizResponse wraps the newly generated quiz
type GenerateQuizResponse struct {
	Message string     `json:"message" example:"Quiz generated successfully"`
	Quiz    *QuizBrief `json:"quiz"`
}

// NewGenerateQuizResponse builds the generation reply for a stored quiz
func NewGenerateQuizResponse(q *models.Quiz) *GenerateQuizResponse {
	return &GenerateQuizResponse{
		Message: "Quiz generated successfully",
		Quiz: &QuizBrief{
			ID:             q.ID,
			Subject:        q.Subject,
			Title:          q.Title,
			TotalQuestions: q.TotalQuestions,
			Difficulty:     q.Difficulty,
			CreatedAt:      q.CreatedAt,
		},
	}
}

// SubmittedAnswer is one entry of a submission; a nil selection means unanswered
type SubmittedAnswer struct {
	SelectedAnswer *int `json:"selectedAnswer" example:"1"`
	TimeTaken      *int `json:"timeTaken,omitempty" example:"12"`
}

// SubmitQuizRequest carries the answers in question order
type SubmitQuizRequest struct {
	Answers        []SubmittedAnswer `json:"answers" binding:"required"`
	TotalTimeTaken *int              `json:"totalTimeTaken,omitempty" example:"240"`
}

// SubmitQuizResponse wraps the graded result
type SubmitQuizResponse struct {
	Message string             `json:"message" example:"Quiz submitted successfully"`
	Result  *models.QuizResult `json:"result"`
}

// StudySummary is the headline of the data behind a set of recommendations
type StudySummary struct {
	TotalSessions int     `json:"totalSessions"`
	TotalHours    float64 `json:"totalHours"`
	TotalQuizzes  int     `json:"totalQuizzes"`
	Subjects      int     `json:"subjects"`
}

// RecommendationResponse is returned by the recommendation generator
type RecommendationResponse struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	DataAvailable   bool                    `json:"dataAvailable"`
	StudySummary    *StudySummary           `json:"studySummary,omitempty"`
}

// SubjectsResponse lists the distinct subjects a user has studied
type SubjectsResponse struct {
	Subjects []string `json:"subjects"`
}
