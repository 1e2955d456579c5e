package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql builds Postgres statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	UploadRepository       *UploadRepository
	QuizRepository         *QuizRepository
	QuizResultRepository   *QuizResultRepository
	StudySessionRepository *StudySessionRepository
	GoalRepository         *GoalRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		UploadRepository:       NewUploadRepository(db),
		QuizRepository:         NewQuizRepository(db),
		QuizResultRepository:   NewQuizResultRepository(db),
		StudySessionRepository: NewStudySessionRepository(db),
		GoalRepository:         NewGoalRepository(db),
	}
}
