package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T, tables ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if len(tables) == 0 {
		tables = []any{
			&models.Admin{},
			&models.Project{},
			&models.Client{},
			&models.ContactSubmission{},
			&models.Subscriber{},
			&models.Setting{},
		}
	}
	if errMigrate := db.AutoMigrate(tables...); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return db
}

// multipartBody builds a multipart form with text fields and an optional
// image file part carrying an explicit content type.
func multipartBody(t *testing.T, fields map[string]string, image []byte, imageContentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if errField := writer.WriteField(key, value); errField != nil {
			t.Fatalf("write field %s: %v", key, errField)
		}
	}
	if image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="image.png"`)
		header.Set("Content-Type", imageContentType)
		part, errPart := writer.CreatePart(header)
		if errPart != nil {
			t.Fatalf("create image part: %v", errPart)
		}
		if _, errWrite := part.Write(image); errWrite != nil {
			t.Fatalf("write image: %v", errWrite)
		}
	}
	if errClose := writer.Close(); errClose != nil {
		t.Fatalf("close writer: %v", errClose)
	}
	return body, writer.FormDataContentType()
}
