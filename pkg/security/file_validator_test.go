package security_test

import (
	"testing"

	"go-careers-cms/pkg/security"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	pdfData := []byte("%PDF-1.4 content")
	pngData := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

	t.Run("Should accept a declared PDF", func(t *testing.T) {
		res := security.ValidateUpload("cv.pdf", pdfData, "application/pdf", security.DocumentMIMETypes)
		assert.True(t, res.Valid)
	})

	t.Run("Should accept a pdf by filename despite a wrong declared MIME", func(t *testing.T) {
		res := security.ValidateUpload("cv.pdf", pdfData, "application/octet-stream", security.DocumentMIMETypes)
		assert.True(t, res.Valid)
	})

	t.Run("Should reject content that contradicts the extension", func(t *testing.T) {
		res := security.ValidateUpload("cv.pdf", []byte("plain text"), "application/pdf", security.DocumentMIMETypes)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Error, "does not match")
	})

	t.Run("Should reject a disallowed MIME type", func(t *testing.T) {
		res := security.ValidateUpload("shot.png", pngData, "image/png", security.DocumentMIMETypes)
		assert.False(t, res.Valid)
	})

	t.Run("Should accept images against the image allow-list", func(t *testing.T) {
		res := security.ValidateUpload("shot.png", pngData, "image/png", security.ImageMIMETypes)
		assert.True(t, res.Valid)
	})
}

func TestIsImageExtension(t *testing.T) {
	assert.True(t, security.IsImageExtension(".png"))
	assert.True(t, security.IsImageExtension(".JPG"))
	assert.False(t, security.IsImageExtension(".pdf"))
}
