package controllers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// UploadFormField is the multipart field carrying the files
const UploadFormField = "files"

// UploadManager is what the upload endpoints need
type UploadManager interface {
	Upload(ctx context.Context, userID int64, files []*multipart.FileHeader) ([]*models.Upload, error)
	List(ctx context.Context, userID int64) ([]*models.Upload, error)
	Delete(ctx context.Context, userID, uploadID int64) error
}

// UploadController handles study material uploads
type UploadController struct {
	uploadService UploadManager
	maxBodyBytes  int64
	logger        zerolog.Logger
}

// NewUploadController creates a new UploadController. maxBodyBytes caps the
// whole multipart body.
func NewUploadController(uploadService UploadManager, maxBodyBytes int64, logger zerolog.Logger) *UploadController {
	return &UploadController{
		uploadService: uploadService,
		maxBodyBytes:  maxBodyBytes,
		logger:        logger,
	}
}

// Upload stores one or more files
// @Summary Upload study material
// @Description Accepts images, PDFs and text files in the "files" field. Every file is checked before any is stored.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to upload"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "Files uploaded"
// @Failure 400 {object} dto.APIResponse "No files, too many files, too large or disallowed type"
// @Failure 401 {object} dto.APIResponse "Not logged in"
// @Router /uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	if c.maxBodyBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxBodyBytes)
	}
	form, err := ctx.MultipartForm()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Invalid multipart upload")
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "No files uploaded or request too large"))
		return
	}

	uploads, err := c.uploadService.Upload(ctx.Request.Context(), userID, form.File[UploadFormField])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.UploadResponse{Message: "Files uploaded successfully", Files: uploads},
	})
}

// List returns the caller's uploads
// @Summary List uploads
// @Tags uploads
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Upload}
// @Failure 401 {object} dto.APIResponse "Not logged in"
// @Router /uploads [get]
func (c *UploadController) List(ctx *gin.Context) {
	userID, ok := requestUserID(ctx)
	if !ok {
		return
	}

	uploads, err := c.uploadService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if uploads == nil {
		uploads = []*models.Upload{}
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: uploads})
}

// Delete removes an upload and its stored file
// @Summary Delete upload
// @Tags uploads
// @Produce json
// @Param id path int true "Upload ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeletedResponse}
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Upload not found"
// @Router /uploads/{id} [delete]
func (c *UploadController) Delete(ctx *gin.Context) {
	userID, id, ok := requestIDs(ctx)
	if !ok {
		return
	}

	if err := c.uploadService.Delete(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.DeletedResponse{Message: "File deleted successfully", ID: id}})
}
