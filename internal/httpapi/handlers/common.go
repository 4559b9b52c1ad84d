package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// errImageTooLarge marks an upload above the configured ceiling.
var errImageTooLarge = errors.New("image exceeds size limit")

// parseIDParam parses the :id path parameter as an unsigned integer.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

// dataURI renders image bytes as a self-contained data URI, or nil when the
// record holds no image.
func dataURI(data []byte, contentType string) any {
	if len(data) == 0 || contentType == "" {
		return nil
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// readImageFile reads an uploaded image into memory, enforcing the size
// ceiling. A nil header means no file was uploaded.
func readImageFile(header *multipart.FileHeader, maxBytes int64) ([]byte, string, error) {
	if header == nil {
		return nil, "", nil
	}
	if header.Size > maxBytes {
		return nil, "", errImageTooLarge
	}
	file, errOpen := header.Open()
	if errOpen != nil {
		return nil, "", errOpen
	}
	defer func() { _ = file.Close() }()

	data, errRead := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if errRead != nil {
		return nil, "", errRead
	}
	if int64(len(data)) > maxBytes {
		return nil, "", errImageTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// formValue returns a trimmed multipart form value and whether the key was
// present at all. Presence distinguishes "leave unchanged" from "set empty".
func formValue(form *multipart.Form, key string) (string, bool) {
	if form == nil {
		return "", false
	}
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return strings.TrimSpace(values[0]), true
}
