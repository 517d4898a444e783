package security

import (
	"bytes"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of upload validation.
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

// MaxUploadSize caps both file and field size for multipart uploads.
const MaxUploadSize = 10 << 20 // 10MB

// Magic byte signatures for allowed file types.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}},
	".webp": {{0x52, 0x49, 0x46, 0x46}}, // RIFF header
	".pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
	".docx": {{0x50, 0x4B, 0x03, 0x04}}, // ZIP (PK..)
}

// ImageMIMETypes is the allow-list for image uploads.
var ImageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DocumentMIMETypes is the allow-list for CV/document uploads.
var DocumentMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateUpload checks an incoming multipart file against a MIME allow-list.
// Files named *.pdf are accepted regardless of the declared MIME type, since
// browsers are inconsistent about PDF content types; the magic-byte check
// still applies.
func ValidateUpload(filename string, data []byte, declaredMIME string, allowedMIME map[string]bool) FileValidationResult {
	result := FileValidationResult{DetectedMIME: declaredMIME}

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext

	isPdfByName := strings.HasSuffix(strings.ToLower(filename), ".pdf")

	if !allowedMIME[declaredMIME] && !isPdfByName {
		result.Error = "invalid extension"
		return result
	}

	if sigs, ok := magicBytes[ext]; ok && !matchesSignature(sigs, data) {
		result.Error = "file content does not match extension"
		return result
	}

	result.Valid = true
	return result
}

func matchesSignature(signatures [][]byte, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// IsImageExtension reports whether the extension is an image type eligible
// for downscaling before upload.
func IsImageExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png" || ext == ".gif" || ext == ".webp"
}
