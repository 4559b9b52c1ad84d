package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func submissionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	contact := NewContactHandler(db)
	subscriber := NewSubscriberHandler(db)
	r.POST("/api/contacts", contact.Create)
	r.GET("/api/contacts", contact.List)
	r.POST("/api/subscribers", subscriber.Create)
	r.GET("/api/subscribers", subscriber.List)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	data, errMarshal := json.Marshal(payload)
	if errMarshal != nil {
		t.Fatalf("marshal: %v", errMarshal)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContactCreate(t *testing.T) {
	db := setupDB(t, &models.ContactSubmission{})
	r := submissionRouter(db)

	w := postJSON(t, r, "/api/contacts", map[string]string{
		"fullName": "Ravi Kumar",
		"email":    "[email protected]",
		"mobile":   "9876543210",
		"city":     "Mumbai",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var row models.ContactSubmission
	if errFind := db.First(&row).Error; errFind != nil {
		t.Fatalf("find: %v", errFind)
	}
	if row.FullName != "Ravi Kumar" || row.City != "Mumbai" {
		t.Fatalf("unexpected stored contact %+v", row)
	}
}

func TestContactCreateMissingField(t *testing.T) {
	r := submissionRouter(setupDB(t, &models.ContactSubmission{}))
	w := postJSON(t, r, "/api/contacts", map[string]string{
		"fullName": "Ravi Kumar",
		"email":    "[email protected]",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubscriberCreateAndList(t *testing.T) {
	db := setupDB(t, &models.Subscriber{})
	r := submissionRouter(db)

	w := postJSON(t, r, "/api/subscribers", map[string]string{"email": "[email protected]"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var row models.Subscriber
	if errFind := db.Where("email = ?", "[email protected]").First(&row).Error; errFind != nil {
		t.Fatalf("stored subscriber not found: %v", errFind)
	}

	// duplicate signups are accepted
	if w = postJSON(t, r, "/api/subscribers", map[string]string{"email": "[email protected]"}); w.Code != http.StatusCreated {
		t.Fatalf("duplicate signup: expected 201, got %d", w.Code)
	}

	list := httptest.NewRecorder()
	r.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/subscribers", nil))
	var rows []map[string]any
	if errDecode := json.NewDecoder(list.Body).Decode(&rows); errDecode != nil {
		t.Fatalf("decode: %v", errDecode)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 subscribers, got %d", len(rows))
	}
}

func TestSubscriberCreateEmptyEmail(t *testing.T) {
	r := submissionRouter(setupDB(t, &models.Subscriber{}))
	w := postJSON(t, r, "/api/subscribers", map[string]string{"email": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
