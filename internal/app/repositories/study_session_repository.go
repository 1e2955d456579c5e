package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

// StudySessionRepository handles database operations for study sessions
type StudySessionRepository struct {
	db *pgxpool.Pool
}

// NewStudySessionRepository creates a new StudySessionRepository
func NewStudySessionRepository(db *pgxpool.Pool) *StudySessionRepository {
	return &StudySessionRepository{db: db}
}

var sessionColumns = []string{"id", "user_id", "subject", "start_time", "end_time", "created_at", "updated_at"}

func scanSession(row pgx.Row) (*models.StudySession, error) {
	var s models.StudySession
	err := row.Scan(&s.ID, &s.UserID, &s.Subject, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Msg("Error scanning study session")
		return nil, err
	}
	return &s, nil
}

func (r *StudySessionRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.StudySession, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing study sessions")
		return nil, err
	}
	defer rows.Close()

	sessions := []*models.StudySession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Create inserts a session and fills in ID and timestamps
func (r *StudySessionRepository) Create(ctx context.Context, s *models.StudySession) error {
	sql, args, err := psql.Insert("study_sessions").
		Columns("user_id", "subject", "start_time", "end_time").
		Values(s.UserID, s.Subject, s.StartTime, s.EndTime).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create session query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("userID", s.UserID).Msg("Error creating study session")
		return fmt.Errorf("error creating study session: %w", err)
	}
	return nil
}

// GetByID retrieves a session regardless of owner
func (r *StudySessionRepository) GetByID(ctx context.Context, id int64) (*models.StudySession, error) {
	sql, args, err := psql.Select(sessionColumns...).From("study_sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get session query: %w", err)
	}
	return scanSession(r.db.QueryRow(ctx, sql, args...))
}

// Update overwrites subject and times
func (r *StudySessionRepository) Update(ctx context.Context, s *models.StudySession) error {
	sql, args, err := psql.Update("study_sessions").
		Set("subject", s.Subject).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update session query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Int64("sessionID", s.ID).Msg("Error updating study session")
		return fmt.Errorf("error updating study session: %w", err)
	}
	return nil
}

// Delete removes a session
func (r *StudySessionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("study_sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sessionID", id).Msg("Error deleting study session")
		return fmt.Errorf("error deleting study session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// ListByUser returns sessions by start time descending; limit <= 0 means all
func (r *StudySessionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.StudySession, error) {
	builder := psql.Select(sessionColumns...).From("study_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return r.list(ctx, builder)
}

// ListBySubjectSince returns the user's sessions for a subject starting at or after since
func (r *StudySessionRepository) ListBySubjectSince(ctx context.Context, userID int64, subject string, since time.Time) ([]*models.StudySession, error) {
	builder := psql.Select(sessionColumns...).From("study_sessions").
		Where(squirrel.Eq{"user_id": userID, "subject": subject}).
		Where(squirrel.GtOrEq{"start_time": since}).
		OrderBy("start_time DESC")
	return r.list(ctx, builder)
}

// Subjects returns the distinct subjects the user has studied, sorted
func (r *StudySessionRepository) Subjects(ctx context.Context, userID int64) ([]string, error) {
	sql, args, err := psql.Select("DISTINCT subject").From("study_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("subject").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing subjects")
		return nil, err
	}
	subjects, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return subjects, nil
}
