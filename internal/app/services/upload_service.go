package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/studyhub/internal/app/auth"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// AllowedUploadTypes are the MIME types accepted by the upload endpoint
var AllowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
	"text/markdown":   true,
}

// UploadLimits bounds a single multipart request
type UploadLimits struct {
	MaxFileBytes int64
	MaxFiles     int
}

// UploadService stores user files and their records
type UploadService struct {
	uploadRepo UploadRepository
	storage    FileStore
	limits     UploadLimits
	logger     zerolog.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(uploadRepo UploadRepository, storage FileStore, limits UploadLimits, logger zerolog.Logger) *UploadService {
	return &UploadService{
		uploadRepo: uploadRepo,
		storage:    storage,
		limits:     limits,
		logger:     logger,
	}
}

type checkedFile struct {
	header   *multipart.FileHeader
	mimeType string
}

// Upload validates every file first, then stores them. If any file or record
// fails, the files already stored by this request are removed again.
func (s *UploadService) Upload(ctx context.Context, userID int64, files []*multipart.FileHeader) ([]*models.Upload, error) {
	if len(files) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "No files uploaded")
	}
	if len(files) > s.limits.MaxFiles {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("Too many files. Maximum %d files at once", s.limits.MaxFiles))
	}

	checked := make([]checkedFile, 0, len(files))
	for _, fh := range files {
		if fh.Size > s.limits.MaxFileBytes {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
				fmt.Sprintf("File size too large. Maximum %dMB per file", s.limits.MaxFileBytes/(1024*1024)))
		}
		mimeType, err := resolveMIME(fh)
		if err != nil {
			return nil, err
		}
		if !AllowedUploadTypes[mimeType] {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
				"Invalid file type. Only images, PDFs, and text files are allowed").
				WithDetails(map[string]interface{}{"file": fh.Filename, "mimetype": mimeType})
		}
		checked = append(checked, checkedFile{header: fh, mimeType: mimeType})
	}

	uploads := make([]*models.Upload, 0, len(checked))
	var storedKeys []string

	for _, cf := range checked {
		upload, key, err := s.store(ctx, userID, cf)
		if key != "" {
			storedKeys = append(storedKeys, key)
		}
		if err != nil {
			s.cleanup(storedKeys)
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	s.logger.Info().Int64("userID", userID).Int("count", len(uploads)).Msg("Files uploaded")
	return uploads, nil
}

func (s *UploadService) store(ctx context.Context, userID int64, cf checkedFile) (*models.Upload, string, error) {
	file, err := cf.header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer file.Close()

	key, err := s.storage.Save(ctx, cf.header.Filename, file, cf.header.Size, cf.mimeType)
	if err != nil {
		s.logger.Error().Err(err).Str("file", cf.header.Filename).Msg("Failed to store uploaded file")
		return nil, "", fmt.Errorf("store uploaded file: %w", err)
	}

	upload := &models.Upload{
		UserID:       userID,
		OriginalName: cf.header.Filename,
		StoredName:   key,
		StoragePath:  key,
		MimeType:     cf.mimeType,
		SizeBytes:    cf.header.Size,
		Kind:         models.KindForMIME(cf.mimeType),
	}
	if err := s.uploadRepo.Create(ctx, upload); err != nil {
		return nil, key, err
	}
	return upload, key, nil
}

// cleanup runs on a fresh context so a cancelled request still removes its files
func (s *UploadService) cleanup(keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(context.Background(), key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Failed to remove stored file after upload error")
		}
	}
}

// resolveMIME trusts the declared type unless it is missing or generic
func resolveMIME(fh *multipart.FileHeader) (string, error) {
	declared := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared, nil
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(io.LimitReader(file, 3072))
	if err != nil {
		return "", fmt.Errorf("detect file type: %w", err)
	}
	mimeType := detected.String()
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return mimeType, nil
}

// List returns the user's uploads, newest first
func (s *UploadService) List(ctx context.Context, userID int64) ([]*models.Upload, error) {
	return s.uploadRepo.ListByUser(ctx, userID)
}

// Delete removes the stored file and then the record. A failed file delete is
// logged and does not stop the record delete.
func (s *UploadService) Delete(ctx context.Context, userID, uploadID int64) error {
	upload, err := s.uploadRepo.GetByID(ctx, uploadID)
	if err != nil {
		return err
	}
	if err := appAuth.EnsureOwner("upload", upload.ID, upload.UserID, userID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, upload.StoragePath); err != nil {
		s.logger.Warn().Err(err).Int64("uploadID", upload.ID).Str("key", upload.StoragePath).
			Msg("Failed to delete stored file, removing record anyway")
	}

	return s.uploadRepo.Delete(ctx, upload.ID)
}
