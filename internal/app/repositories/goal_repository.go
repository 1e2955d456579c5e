package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

// GoalRepository handles database operations for goals
type GoalRepository struct {
	db *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

var goalColumns = []string{"id", "user_id", "subject", "target_hours", "period", "created_at", "updated_at"}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Subject, &g.TargetHours, &g.Period, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGoalNotFound
		}
		logger.Error().Err(err).Msg("Error scanning goal")
		return nil, err
	}
	return &g, nil
}

// Create inserts a goal and fills in ID and timestamps
func (r *GoalRepository) Create(ctx context.Context, g *models.Goal) error {
	sql, args, err := psql.Insert("goals").
		Columns("user_id", "subject", "target_hours", "period").
		Values(g.UserID, g.Subject, g.TargetHours, g.Period).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create goal query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("userID", g.UserID).Msg("Error creating goal")
		return fmt.Errorf("error creating goal: %w", err)
	}
	return nil
}

// GetByID retrieves a goal regardless of owner
func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*models.Goal, error) {
	sql, args, err := psql.Select(goalColumns...).From("goals").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get goal query: %w", err)
	}
	return scanGoal(r.db.QueryRow(ctx, sql, args...))
}

// Update overwrites subject, target and period
func (r *GoalRepository) Update(ctx context.Context, g *models.Goal) error {
	sql, args, err := psql.Update("goals").
		Set("subject", g.Subject).
		Set("target_hours", g.TargetHours).
		Set("period", g.Period).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": g.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update goal query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrGoalNotFound
		}
		logger.Error().Err(err).Int64("goalID", g.ID).Msg("Error updating goal")
		return fmt.Errorf("error updating goal: %w", err)
	}
	return nil
}

// Delete removes a goal
func (r *GoalRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("goals").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete goal query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("goalID", id).Msg("Error deleting goal")
		return fmt.Errorf("error deleting goal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// ListByUser returns the user's goals, newest first
func (r *GoalRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Goal, error) {
	sql, args, err := psql.Select(goalColumns...).From("goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list goals query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing goals")
		return nil, err
	}
	defer rows.Close()

	goals := []*models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
