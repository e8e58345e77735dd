package server

import (
	"io"
	"mime"
	"strings"

	"github.com/gin-gonic/gin"
)

func isMultipart(c *gin.Context) bool {
	ct := c.GetHeader("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "multipart/form-data"
}

// readFormUpload reads an optional file part. A missing part is not an
// error; it returns nil data so handlers can treat the upload as absent.
func readFormUpload(c *gin.Context, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return data, contentType, nil
}

// formString returns a pointer to the form value when the field was sent,
// nil when it was omitted. Partial updates rely on the distinction.
func formString(c *gin.Context, field string) *string {
	v, ok := c.GetPostForm(field)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}
