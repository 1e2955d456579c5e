package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

// QuizResultRepository handles database operations for quiz results
type QuizResultRepository struct {
	db *pgxpool.Pool
}

// NewQuizResultRepository creates a new QuizResultRepository
func NewQuizResultRepository(db *pgxpool.Pool) *QuizResultRepository {
	return &QuizResultRepository{db: db}
}

var resultColumns = []string{
	"r.id", "r.user_id", "r.quiz_id", "r.score", "r.total_questions", "r.percentage", "r.answers", "r.total_time_taken", "r.completed_at",
}

func scanResult(row pgx.Row, extra ...interface{}) (*models.QuizResult, error) {
	var res models.QuizResult
	var answers []byte
	dest := append([]interface{}{
		&res.ID, &res.UserID, &res.QuizID, &res.Score, &res.TotalQuestions, &res.Percentage, &answers, &res.TotalTimeTaken, &res.CompletedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		logger.Error().Err(err).Msg("Error scanning quiz result")
		return nil, err
	}
	if err := json.Unmarshal(answers, &res.Answers); err != nil {
		return nil, fmt.Errorf("decode answers of result %d: %w", res.ID, err)
	}
	return &res, nil
}

// Create stores a graded submission and fills in ID and CompletedAt
func (r *QuizResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	sql, args, err := psql.Insert("quiz_results").
		Columns("user_id", "quiz_id", "score", "total_questions", "percentage", "answers", "total_time_taken").
		Values(result.UserID, result.QuizID, result.Score, result.TotalQuestions, result.Percentage, answers, result.TotalTimeTaken).
		Suffix("RETURNING id, completed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create quiz result query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&result.ID, &result.CompletedAt); err != nil {
		logger.Error().Err(err).Int64("quizID", result.QuizID).Msg("Error creating quiz result")
		return fmt.Errorf("error creating quiz result: %w", err)
	}
	return nil
}

// ListByQuiz returns all results of a quiz, newest first
func (r *QuizResultRepository) ListByQuiz(ctx context.Context, quizID int64) ([]*models.QuizResult, error) {
	sql, args, err := psql.Select(resultColumns...).From("quiz_results r").
		Where(squirrel.Eq{"r.quiz_id": quizID}).
		OrderBy("r.completed_at DESC", "r.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list quiz results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("quizID", quizID).Msg("Error listing quiz results")
		return nil, err
	}
	defer rows.Close()

	results := []*models.QuizResult{}
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// ListRecentWithSubject returns the user's latest results joined with quiz subject.
// Results whose quiz is gone report the subject "Unknown".
func (r *QuizResultRepository) ListRecentWithSubject(ctx context.Context, userID int64, limit int) ([]*models.ScoredResult, error) {
	cols := append(append([]string{}, resultColumns...), "COALESCE(q.subject, 'Unknown')")
	sql, args, err := psql.Select(cols...).From("quiz_results r").
		LeftJoin("quizzes q ON q.id = r.quiz_id").
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.completed_at DESC", "r.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing recent results")
		return nil, err
	}
	defer rows.Close()

	results := []*models.ScoredResult{}
	for rows.Next() {
		var subject string
		res, err := scanResult(rows, &subject)
		if err != nil {
			return nil, err
		}
		results = append(results, &models.ScoredResult{QuizResult: *res, Subject: subject})
	}
	return results, rows.Err()
}
