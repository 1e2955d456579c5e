package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

type testFile struct {
	name        string
	contentType string
	body        []byte
}

// multipartFiles builds real FileHeaders by parsing a multipart request
func multipartFiles(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["files"]
}

func newUploadFixture() (*UploadService, *fakeUploadRepo, *fakeFileStore) {
	repo := newFakeUploadRepo()
	store := newFakeFileStore()
	svc := NewUploadService(repo, store, UploadLimits{MaxFileBytes: 1024, MaxFiles: 3}, zerolog.Nop())
	return svc, repo, store
}

func TestUploadService_Upload(t *testing.T) {
	svc, _, store := newUploadFixture()

	uploads, err := svc.Upload(context.Background(), 1, multipartFiles(t,
		testFile{name: "notes.txt", contentType: "text/plain", body: []byte("Photosynthesis converts light to energy")},
		testFile{name: "scan.png", contentType: "image/png", body: []byte("\x89PNG\r\n\x1a\n0000")},
	))
	require.NoError(t, err)
	require.Len(t, uploads, 2)

	assert.Equal(t, models.UploadKindDocument, uploads[0].Kind)
	assert.Equal(t, "notes.txt", uploads[0].OriginalName)
	assert.Equal(t, models.UploadKindImage, uploads[1].Kind)
	assert.Equal(t, int64(1), uploads[1].UserID)
	assert.Len(t, store.files, 2)
	assert.Equal(t, []byte("Photosynthesis converts light to energy"), store.files[uploads[0].StoragePath])
}

func TestUploadService_DetectsGenericType(t *testing.T) {
	svc, _, _ := newUploadFixture()

	uploads, err := svc.Upload(context.Background(), 1, multipartFiles(t,
		testFile{name: "doc.pdf", contentType: "application/octet-stream", body: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")},
	))
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "application/pdf", uploads[0].MimeType)
	assert.Equal(t, models.UploadKindPDF, uploads[0].Kind)
}

func TestUploadService_RejectsBeforeStoring(t *testing.T) {
	tests := []struct {
		name  string
		files []testFile
	}{
		{"disallowed type", []testFile{
			{name: "ok.txt", contentType: "text/plain", body: []byte("fine")},
			{name: "run.exe", contentType: "application/x-msdownload", body: []byte("MZ")},
		}},
		{"too large", []testFile{{name: "big.txt", contentType: "text/plain", body: bytes.Repeat([]byte("a"), 2048)}}},
		{"too many", []testFile{
			{name: "1.txt", contentType: "text/plain", body: []byte("1")},
			{name: "2.txt", contentType: "text/plain", body: []byte("2")},
			{name: "3.txt", contentType: "text/plain", body: []byte("3")},
			{name: "4.txt", contentType: "text/plain", body: []byte("4")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, store := newUploadFixture()
			_, err := svc.Upload(context.Background(), 1, multipartFiles(t, tt.files...))
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Empty(t, store.files)
			assert.Empty(t, repo.uploads)
		})
	}

	svc, _, _ := newUploadFixture()
	_, err := svc.Upload(context.Background(), 1, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUploadService_CleansUpOnRecordFailure(t *testing.T) {
	svc, repo, store := newUploadFixture()
	repo.createErr = errors.New("db down")

	_, err := svc.Upload(context.Background(), 1, multipartFiles(t,
		testFile{name: "notes.txt", contentType: "text/plain", body: []byte("text")},
	))
	require.Error(t, err)
	assert.Empty(t, store.files)
	assert.Len(t, store.deleted, 1)
}

func TestUploadService_Delete(t *testing.T) {
	svc, repo, store := newUploadFixture()
	uploads, err := svc.Upload(context.Background(), 1, multipartFiles(t,
		testFile{name: "a.txt", contentType: "text/plain", body: []byte("a")},
		testFile{name: "b.txt", contentType: "text/plain", body: []byte("b")},
	))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), 2, uploads[0].ID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 999), apperrors.ErrUploadNotFound)

	require.NoError(t, svc.Delete(context.Background(), 1, uploads[0].ID))
	assert.NotContains(t, repo.uploads, uploads[0].ID)

	// A failed file delete does not block removing the record
	store.deleteErr = errors.New("disk error")
	require.NoError(t, svc.Delete(context.Background(), 1, uploads[1].ID))
	assert.Empty(t, repo.uploads)

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}
