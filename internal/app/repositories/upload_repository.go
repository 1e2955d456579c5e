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

// UploadRepository handles database operations for uploads
type UploadRepository struct {
	db *pgxpool.Pool
}

// NewUploadRepository creates a new UploadRepository
func NewUploadRepository(db *pgxpool.Pool) *UploadRepository {
	return &UploadRepository{db: db}
}

var uploadColumns = []string{
	"id", "user_id", "original_name", "stored_name", "storage_path", "mime_type", "size_bytes", "kind", "created_at",
}

func scanUpload(row pgx.Row) (*models.Upload, error) {
	var u models.Upload
	err := row.Scan(&u.ID, &u.UserID, &u.OriginalName, &u.StoredName, &u.StoragePath, &u.MimeType, &u.SizeBytes, &u.Kind, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUploadNotFound
		}
		logger.Error().Err(err).Msg("Error scanning upload")
		return nil, err
	}
	return &u, nil
}

// Create inserts the upload record and fills in ID and CreatedAt
func (r *UploadRepository) Create(ctx context.Context, upload *models.Upload) error {
	sql, args, err := psql.Insert("uploads").
		Columns("user_id", "original_name", "stored_name", "storage_path", "mime_type", "size_bytes", "kind").
		Values(upload.UserID, upload.OriginalName, upload.StoredName, upload.StoragePath, upload.MimeType, upload.SizeBytes, upload.Kind).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create upload query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&upload.ID, &upload.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("userID", upload.UserID).Msg("Error creating upload")
		return fmt.Errorf("error creating upload: %w", err)
	}
	return nil
}

// GetByID retrieves an upload regardless of owner
func (r *UploadRepository) GetByID(ctx context.Context, id int64) (*models.Upload, error) {
	sql, args, err := psql.Select(uploadColumns...).From("uploads").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get upload query: %w", err)
	}
	return scanUpload(r.db.QueryRow(ctx, sql, args...))
}

// ListByUser returns the user's uploads, newest first
func (r *UploadRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Upload, error) {
	sql, args, err := psql.Select(uploadColumns...).From("uploads").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list uploads query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing uploads")
		return nil, err
	}
	defer rows.Close()

	uploads := []*models.Upload{}
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// Delete removes the upload record
func (r *UploadRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("uploads").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete upload query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("uploadID", id).Msg("Error deleting upload")
		return fmt.Errorf("error deleting upload: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUploadNotFound
	}
	return nil
}
