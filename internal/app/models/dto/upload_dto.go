package dto

import "github.com/yigit/studyhub/internal/app/models"

// UploadResponse lists the files stored by one multipart request
type UploadResponse struct {
	Message string           `json:"message" example:"Files uploaded successfully"`
	Files   []*models.Upload `json:"files"`
}
