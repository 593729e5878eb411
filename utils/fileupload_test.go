package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func headerFor(filename string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: filename,
		Size:     size,
	}
}

func TestValidatePhotoFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectError  bool
		expectedCode string
	}{
		{
			name:        "Valid PNG file",
			filename:    "panel.png",
			size:        1024,
			expectError: false,
		},
		{
			name:        "Valid JPG file",
			filename:    "battery.jpg",
			size:        2048,
			expectError: false,
		},
		{
			name:        "Valid JPEG file",
			filename:    "inverter.jpeg",
			size:        2048,
			expectError: false,
		},
		{
			name:        "Uppercase extension accepted",
			filename:    "WIRING.PNG",
			size:        512,
			expectError: false,
		},
		{
			name:         "Rejects oversized file",
			filename:     "huge.png",
			size:         MaxFileSize + 1,
			expectError:  true,
			expectedCode: "FILE_TOO_LARGE",
		},
		{
			name:         "Rejects unsupported format",
			filename:     "notes.pdf",
			size:         1024,
			expectError:  true,
			expectedCode: "INVALID_FILE_FORMAT",
		},
		{
			name:         "Rejects file without extension",
			filename:     "photo",
			size:         1024,
			expectError:  true,
			expectedCode: "INVALID_FILE_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhotoFile(headerFor(tt.filename, tt.size))

			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			uploadErr, ok := err.(*FileUploadError)
			assert.True(t, ok, "Error should be a FileUploadError")
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}

func TestFileUploadErrorMessage(t *testing.T) {
	err := &FileUploadError{Code: "FILE_TOO_LARGE", Message: "too big"}
	assert.Equal(t, "too big", err.Error())
}
