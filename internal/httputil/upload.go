package httputil

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadedFile returns the file uploaded as form field "file". The file
// name must end with suffix, compared case insensitively.
func UploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, ErrNoFile
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(strings.ToLower(formFile.Filename), suffix) {
		return nil, fmt.Errorf("%w: %s", ErrFileType, suffix)
	}

	return formFile.Open()
}
