package content

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/filestorage"
)

type memStorage struct {
	files map[string][]byte
	reads int
}

func (m *memStorage) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.files[name] = data
	return name, nil
}

func (m *memStorage) Read(_ context.Context, key string) ([]byte, error) {
	m.reads++
	data, ok := m.files[key]
	if !ok {
		return nil, filestorage.ErrFileNotFound
	}
	return data, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	delete(m.files, key)
	return nil
}

func newStore(files map[string]string) *memStorage {
	m := &memStorage{files: map[string][]byte{}}
	for k, v := range files {
		m.files[k] = []byte(v)
	}
	return m
}

func TestExtract_Document(t *testing.T) {
	store := newStore(map[string]string{"k1": "Photosynthesis converts light energy into chemical energy."})
	ex := NewExtractor(store, false)

	in, err := ex.Extract(context.Background(), &models.Upload{
		Kind: models.UploadKindDocument, MimeType: "text/plain", StoragePath: "k1", OriginalName: "bio.txt",
	})
	require.NoError(t, err)
	assert.Nil(t, in.Attachment)
	assert.Equal(t, "Photosynthesis converts light energy into chemical energy.", in.Text)
}

func TestExtract_EmptyDocument(t *testing.T) {
	ex := NewExtractor(newStore(map[string]string{"k": " \n\t "}), false)

	_, err := ex.Extract(context.Background(), &models.Upload{Kind: models.UploadKindDocument, MimeType: "text/markdown", StoragePath: "k"})
	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestExtract_UnsupportedBeforeRead(t *testing.T) {
	store := newStore(map[string]string{"k": "data"})
	ex := NewExtractor(store, false)

	cases := []*models.Upload{
		{Kind: models.UploadKindDocument, MimeType: "text/csv", StoragePath: "k"},
		{Kind: models.UploadKindOther, MimeType: "application/zip", StoragePath: "k"},
	}
	for _, u := range cases {
		_, err := ex.Extract(context.Background(), u)
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedType, u.MimeType)
	}
	assert.Zero(t, store.reads)
}

func TestExtract_MissingFile(t *testing.T) {
	ex := NewExtractor(newStore(nil), false)

	_, err := ex.Extract(context.Background(), &models.Upload{Kind: models.UploadKindImage, MimeType: "image/png", StoragePath: "gone"})
	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestExtract_ImageAttachment(t *testing.T) {
	ex := NewExtractor(newStore(map[string]string{"k": "\x89PNG"}), false)

	in, err := ex.Extract(context.Background(), &models.Upload{
		Kind: models.UploadKindImage, MimeType: "image/png", StoragePath: "k", OriginalName: "diagram.PNG",
	})
	require.NoError(t, err)
	require.NotNil(t, in.Attachment)
	assert.Equal(t, "image/png", in.Attachment.MIMEType)
	assert.Equal(t, []byte("\x89PNG"), in.Attachment.Data)
}

func TestExtract_PDF(t *testing.T) {
	store := newStore(map[string]string{"k": "not really a pdf"})

	_, err := NewExtractor(store, false).Extract(context.Background(), &models.Upload{Kind: models.UploadKindPDF, MimeType: "application/pdf", StoragePath: "k"})
	assert.ErrorIs(t, err, apperrors.ErrExtraction)

	in, err := NewExtractor(store, true).Extract(context.Background(), &models.Upload{Kind: models.UploadKindPDF, MimeType: "application/pdf", StoragePath: "k"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", in.Attachment.MIMEType)
}

func TestExtract_EmptyAttachment(t *testing.T) {
	store := newStore(map[string]string{"empty": ""})

	tests := []struct {
		name   string
		upload *models.Upload
	}{
		{"image", &models.Upload{Kind: models.UploadKindImage, MimeType: "image/png", StoragePath: "empty", OriginalName: "a.png"}},
		{"pdf attachment", &models.Upload{Kind: models.UploadKindPDF, MimeType: "application/pdf", StoragePath: "empty", OriginalName: "a.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewExtractor(store, true).Extract(context.Background(), tt.upload)
			assert.Nil(t, in)
			assert.ErrorIs(t, err, apperrors.ErrExtraction)
			assert.ErrorContains(t, err, "empty content")
		})
	}
}

func TestMIMEForFilename(t *testing.T) {
	tests := map[string]string{
		"a.jpg":   "image/jpeg",
		"a.JPEG":  "image/jpeg",
		"a.png":   "image/png",
		"a.gif":   "image/gif",
		"a.webp":  "image/webp",
		"a.pdf":   "application/pdf",
		"a.bmp":   "image/jpeg",
		"no-ext":  "image/jpeg",
	}
	for name, want := range tests {
		assert.Equal(t, want, MIMEForFilename(name), name)
	}
}

func TestPDFText_Garbage(t *testing.T) {
	_, err := PDFText([]byte("%PDF-1.4 truncated"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrExtraction))
}
