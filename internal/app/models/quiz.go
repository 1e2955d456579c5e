package models

import "time"

// UnansweredSelection marks a question the user skipped
const UnansweredSelection = -1

// Question is one multiple-choice item embedded in a quiz
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Quiz is generated once per (user, upload) and never edited
type Quiz struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"userId" db:"user_id"`
	UploadID       int64      `json:"uploadId" db:"upload_id"`
	Subject        string     `json:"subject" db:"subject"`
	Title          string     `json:"title" db:"title"`
	Questions      []Question `json:"questions" db:"questions"`
	Difficulty     Difficulty `json:"difficulty" db:"difficulty"`
	TotalQuestions int        `json:"totalQuestions" db:"total_questions"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// Answer is the graded response to one question
type Answer struct {
	QuestionIndex  int  `json:"questionIndex"`
	SelectedAnswer int  `json:"selectedAnswer"`
	IsCorrect      bool `json:"isCorrect"`
	TimeTaken      int  `json:"timeTaken"`
}

// QuizResult is an immutable graded submission
type QuizResult struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	QuizID         int64     `json:"quizId" db:"quiz_id"`
	Score          int       `json:"score" db:"score"`
	TotalQuestions int       `json:"totalQuestions" db:"total_questions"`
	Percentage     int       `json:"percentage" db:"percentage"`
	Answers        []Answer  `json:"answers" db:"answers"`
	TotalTimeTaken int       `json:"totalTimeTaken" db:"total_time_taken"`
	CompletedAt    time.Time `json:"completedAt" db:"completed_at"`
}

// ScoredResult is a result joined with the subject of its quiz
type ScoredResult struct {
	QuizResult
	Subject string `json:"subject"`
}

// LastResult is the most recent attempt shown in quiz listings
type LastResult struct {
	Score       int       `json:"score"`
	Percentage  int       `json:"percentage"`
	CompletedAt time.Time `json:"completedAt"`
}

// QuizSummary is a quiz without its questions, for listings
type QuizSummary struct {
	ID             int64       `json:"id"`
	UploadID       int64       `json:"uploadId"`
	Subject        string      `json:"subject"`
	Title          string      `json:"title"`
	Difficulty     Difficulty  `json:"difficulty"`
	TotalQuestions int         `json:"totalQuestions"`
	CreatedAt      time.Time   `json:"createdAt"`
	LastResult     *LastResult `json:"lastResult"`
}
