package v1

import (
	"errors"
	"io"
	"mime/multipart"

	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/imaging"
	"go-careers-cms/pkg/security"

	"github.com/gin-gonic/gin"
)

// readUpload reads and validates one multipart file. Image files are
// downscaled before they travel any further.
func readUpload(header *multipart.FileHeader, allowedMIME map[string]bool) (*domain.FileUpload, error) {
	if header.Size > security.MaxUploadSize {
		return nil, apperror.TooLarge("File exceeds the 10MB upload limit")
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, security.MaxUploadSize+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if int64(len(data)) > security.MaxUploadSize {
		return nil, apperror.TooLarge("File exceeds the 10MB upload limit")
	}

	result := security.ValidateUpload(header.Filename, data, header.Header.Get("Content-Type"), allowedMIME)
	if !result.Valid {
		return nil, apperror.BadRequest("Unsupported file type: " + result.Error)
	}

	if security.IsImageExtension(result.Extension) {
		data = imaging.DownscaleIfNeeded(data)
	}

	return &domain.FileUpload{Name: header.Filename, Data: data}, nil
}

// formUpload pulls one optional file from the multipart form. A missing
// field returns (nil, nil).
func formUpload(c *gin.Context, field string, allowedMIME map[string]bool) (*domain.FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, apperror.TooLarge("File exceeds the 10MB upload limit")
		}
		return nil, nil
	}
	return readUpload(header, allowedMIME)
}

// formUploads pulls every file bound to one multipart field.
func formUploads(c *gin.Context, field string, allowedMIME map[string]bool) ([]*domain.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, apperror.TooLarge("File exceeds the 10MB upload limit")
		}
		return nil, nil
	}

	headers := form.File[field]
	uploads := make([]*domain.FileUpload, 0, len(headers))
	for _, h := range headers {
		up, err := readUpload(h, allowedMIME)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}
