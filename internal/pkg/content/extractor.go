// Package content turns stored uploads into model input: plain text or an inline attachment.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/filestorage"
)

// Attachment is binary content sent inline next to the prompt
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Input is exactly one of Text or Attachment
type Input struct {
	Text       string
	Attachment *Attachment
}

// documentTypes are the text MIME types accepted for the document kind
var documentTypes = map[string]bool{
	"text/plain":    true,
	"text/markdown": true,
}

// extensionTypes resolves attachment MIME types from the stored file name
var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// MIMEForFilename maps an extension to the attachment type; unknown is image/jpeg
func MIMEForFilename(name string) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return "image/jpeg"
}

// Extractor reads uploads through a FileStorage
type Extractor struct {
	storage         filestorage.FileStorage
	pdfAsAttachment bool
}

// NewExtractor creates an Extractor. With pdfAsAttachment PDFs skip text
// extraction and go to the model as inline documents.
func NewExtractor(storage filestorage.FileStorage, pdfAsAttachment bool) *Extractor {
	return &Extractor{storage: storage, pdfAsAttachment: pdfAsAttachment}
}

// Extract produces model input for an upload. The upload kind is checked
// before anything is read.
func (e *Extractor) Extract(ctx context.Context, upload *models.Upload) (*Input, error) {
	switch upload.Kind {
	case models.UploadKindDocument:
		if !documentTypes[upload.MimeType] {
			return nil, apperrors.NewUnsupportedTypeError("document", upload.MimeType)
		}
		data, err := e.read(ctx, upload)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(data) {
			return nil, apperrors.NewExtractionError("document is not valid UTF-8 text", nil)
		}
		return textInput(string(data))

	case models.UploadKindPDF:
		data, err := e.read(ctx, upload)
		if err != nil {
			return nil, err
		}
		if e.pdfAsAttachment {
			return attachmentInput("application/pdf", data)
		}
		text, err := PDFText(data)
		if err != nil {
			return nil, apperrors.NewExtractionError("could not read PDF", err)
		}
		return textInput(text)

	case models.UploadKindImage:
		data, err := e.read(ctx, upload)
		if err != nil {
			return nil, err
		}
		return attachmentInput(MIMEForFilename(upload.OriginalName), data)

	default:
		return nil, apperrors.NewUnsupportedTypeError(string(upload.Kind), upload.MimeType)
	}
}

func (e *Extractor) read(ctx context.Context, upload *models.Upload) ([]byte, error) {
	data, err := e.storage.Read(ctx, upload.StoragePath)
	if err != nil {
		if errors.Is(err, filestorage.ErrFileNotFound) {
			return nil, apperrors.NewExtractionError("stored file is missing", nil)
		}
		return nil, apperrors.NewExtractionError("could not read stored file", err)
	}
	return data, nil
}

func attachmentInput(mimeType string, data []byte) (*Input, error) {
	if len(data) == 0 {
		return nil, apperrors.NewExtractionError("empty content", nil)
	}
	return &Input{Attachment: &Attachment{MIMEType: mimeType, Data: data}}, nil
}

func textInput(text string) (*Input, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewExtractionError("empty content", nil)
	}
	return &Input{Text: text}, nil
}

// PDFText extracts the plain text layer of a PDF.
// The decoder panics on some malformed files, which is reported as an error.
func PDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
