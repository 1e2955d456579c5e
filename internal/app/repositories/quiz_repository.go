package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/db"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/dberrors"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

// QuizUploadConstraint is the unique (user_id, upload_id) constraint on quizzes
const QuizUploadConstraint = "quizzes_user_upload_key"

// QuizRepository handles database operations for quizzes
type QuizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db}
}

var quizColumns = []string{
	"id", "user_id", "upload_id", "subject", "title", "questions", "difficulty", "total_questions", "created_at", "updated_at",
}

func scanQuiz(row pgx.Row) (*models.Quiz, error) {
	var q models.Quiz
	var questions []byte
	err := row.Scan(&q.ID, &q.UserID, &q.UploadID, &q.Subject, &q.Title, &questions, &q.Difficulty, &q.TotalQuestions, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuizNotFound
		}
		logger.Error().Err(err).Msg("Error scanning quiz")
		return nil, err
	}
	if err := json.Unmarshal(questions, &q.Questions); err != nil {
		return nil, fmt.Errorf("decode questions of quiz %d: %w", q.ID, err)
	}
	return &q, nil
}

// Create inserts a quiz. A second quiz for the same (user, upload) fails with
// apperrors.ErrResourceAlreadyExists.
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	sql, args, err := psql.Insert("quizzes").
		Columns("user_id", "upload_id", "subject", "title", "questions", "difficulty", "total_questions").
		Values(quiz.UserID, quiz.UploadID, quiz.Subject, quiz.Title, questions, quiz.Difficulty, quiz.TotalQuestions).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create quiz query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&quiz.ID, &quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, QuizUploadConstraint) {
			return fmt.Errorf("quiz for upload %d: %w", quiz.UploadID, apperrors.ErrResourceAlreadyExists)
		}
		logger.Error().Err(err).Int64("uploadID", quiz.UploadID).Msg("Error creating quiz")
		return fmt.Errorf("error creating quiz: %w", err)
	}
	return nil
}

// GetByID retrieves a quiz with its questions
func (r *QuizRepository) GetByID(ctx context.Context, id int64) (*models.Quiz, error) {
	sql, args, err := psql.Select(quizColumns...).From("quizzes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get quiz query: %w", err)
	}
	return scanQuiz(r.db.QueryRow(ctx, sql, args...))
}

// GetByUserAndUpload finds the quiz already generated from an upload
func (r *QuizRepository) GetByUserAndUpload(ctx context.Context, userID, uploadID int64) (*models.Quiz, error) {
	sql, args, err := psql.Select(quizColumns...).From("quizzes").
		Where(squirrel.Eq{"user_id": userID, "upload_id": uploadID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get quiz by upload query: %w", err)
	}
	return scanQuiz(r.db.QueryRow(ctx, sql, args...))
}

// ListByUser returns quiz summaries newest first, each with its latest result
func (r *QuizRepository) ListByUser(ctx context.Context, userID int64, subject string) ([]*models.QuizSummary, error) {
	builder := psql.Select(
		"q.id", "q.upload_id", "q.subject", "q.title", "q.difficulty", "q.total_questions", "q.created_at",
		"lr.score", "lr.percentage", "lr.completed_at",
	).From("quizzes q").
		LeftJoin(`LATERAL (
			SELECT score, percentage, completed_at FROM quiz_results
			WHERE quiz_id = q.id ORDER BY completed_at DESC LIMIT 1
		) lr ON TRUE`).
		Where(squirrel.Eq{"q.user_id": userID}).
		OrderBy("q.created_at DESC", "q.id DESC")
	if subject != "" {
		builder = builder.Where(squirrel.Eq{"q.subject": subject})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list quizzes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing quizzes")
		return nil, err
	}
	defer rows.Close()

	quizzes := []*models.QuizSummary{}
	for rows.Next() {
		var s models.QuizSummary
		var score, percentage *int
		var completedAt *time.Time
		if err := rows.Scan(&s.ID, &s.UploadID, &s.Subject, &s.Title, &s.Difficulty, &s.TotalQuestions, &s.CreatedAt,
			&score, &percentage, &completedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning quiz summary")
			return nil, err
		}
		if score != nil && percentage != nil && completedAt != nil {
			s.LastResult = &models.LastResult{Score: *score, Percentage: *percentage, CompletedAt: *completedAt}
		}
		quizzes = append(quizzes, &s)
	}
	return quizzes, rows.Err()
}

// DeleteWithResults removes a quiz and all of its results in one transaction
func (r *QuizRepository) DeleteWithResults(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := psql.Delete("quiz_results").Where(squirrel.Eq{"quiz_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete quiz results query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error deleting quiz results: %w", err)
		}

		sql, args, err = psql.Delete("quizzes").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete quiz query: %w", err)
		}
		result, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error deleting quiz: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrQuizNotFound
		}
		return nil
	})
}
