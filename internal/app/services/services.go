// Package services implements the study tracker's business rules. Every
// operation takes the authenticated user id as an explicit argument.
package services

import (
	"context"
	"io"
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/content"
)

// Clock returns the current time; tests replace it
type Clock func() time.Time

// UserRepository is the persistence the auth service needs
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UploadRepository is the persistence of upload records
type UploadRepository interface {
	Create(ctx context.Context, upload *models.Upload) error
	GetByID(ctx context.Context, id int64) (*models.Upload, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Upload, error)
	Delete(ctx context.Context, id int64) error
}

// QuizRepository is the persistence of quizzes
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id int64) (*models.Quiz, error)
	GetByUserAndUpload(ctx context.Context, userID, uploadID int64) (*models.Quiz, error)
	ListByUser(ctx context.Context, userID int64, subject string) ([]*models.QuizSummary, error)
	DeleteWithResults(ctx context.Context, id int64) error
}

// QuizResultRepository is the persistence of graded submissions
type QuizResultRepository interface {
	Create(ctx context.Context, result *models.QuizResult) error
	ListByQuiz(ctx context.Context, quizID int64) ([]*models.QuizResult, error)
	ListRecentWithSubject(ctx context.Context, userID int64, limit int) ([]*models.ScoredResult, error)
}

// StudySessionRepository is the persistence of study sessions
type StudySessionRepository interface {
	Create(ctx context.Context, s *models.StudySession) error
	GetByID(ctx context.Context, id int64) (*models.StudySession, error)
	Update(ctx context.Context, s *models.StudySession) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.StudySession, error)
	ListBySubjectSince(ctx context.Context, userID int64, subject string, since time.Time) ([]*models.StudySession, error)
	Subjects(ctx context.Context, userID int64) ([]string, error)
}

// GoalRepository is the persistence of goals
type GoalRepository interface {
	Create(ctx context.Context, g *models.Goal) error
	GetByID(ctx context.Context, id int64) (*models.Goal, error)
	Update(ctx context.Context, g *models.Goal) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Goal, error)
}

// ContentExtractor turns an upload into generation input
type ContentExtractor interface {
	Extract(ctx context.Context, upload *models.Upload) (*content.Input, error)
}

// FileStore is the byte storage behind uploads
type FileStore interface {
	Save(ctx context.Context, originalName string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
