package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/fliprlabs/portfolio-api/internal/config"
	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/fliprlabs/portfolio-api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T, sessionTTL time.Duration) (*gin.Engine, *gorm.DB, *session.Store, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:router_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.AutoMigrate(
		&models.Admin{},
		&models.Project{},
		&models.Client{},
		&models.ContactSubmission{},
		&models.Subscriber{},
		&models.Setting{},
	); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	cfg := config.Default()
	sessions := session.NewStore(sessionTTL)
	engine := gin.New()
	RegisterRoutes(engine, db, sessions, cfg)
	return engine, db, sessions, cfg
}

func loginAsAdmin(t *testing.T, r *gin.Engine, cookieName string) *http.Cookie {
	t.Helper()
	register, _ := json.Marshal(map[string]string{
		"fullname": "Site Admin",
		"username": "admin",
		"password": "admin-pass",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(register))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	login, _ := json.Marshal(map[string]string{"username": "admin", "password": "admin-pass"})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == cookieName {
			return cookie
		}
	}
	t.Fatalf("no session cookie in login response")
	return nil
}

func projectForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range map[string]string{
		"projectName": "Harbor House",
		"description": "Waterfront office",
		"location":    "Kochi",
		"category":    "Commercial",
	} {
		if errField := writer.WriteField(key, value); errField != nil {
			t.Fatalf("write field: %v", errField)
		}
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="img.png"`)
	header.Set("Content-Type", "image/png")
	part, errPart := writer.CreatePart(header)
	if errPart != nil {
		t.Fatalf("create part: %v", errPart)
	}
	if _, errWrite := part.Write([]byte{0x89, 0x50, 0x4e, 0x47}); errWrite != nil {
		t.Fatalf("write image: %v", errWrite)
	}
	if errClose := writer.Close(); errClose != nil {
		t.Fatalf("close writer: %v", errClose)
	}
	return body, writer.FormDataContentType()
}

func TestGateRejectsWithoutSession(t *testing.T) {
	r, _, _, _ := setupRouter(t, time.Hour)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/projects/1"},
		{http.MethodDelete, "/api/projects/1"},
		{http.MethodPost, "/api/clients"},
		{http.MethodPut, "/api/clients/1"},
		{http.MethodDelete, "/api/clients/1"},
		{http.MethodGet, "/api/auth/users"},
		{http.MethodPut, "/api/auth/users/1"},
		{http.MethodDelete, "/api/auth/users/1"},
		{http.MethodGet, "/api/contacts"},
		{http.MethodGet, "/api/subscribers"},
		{http.MethodPut, "/api/settings"},
	}
	for _, route := range protected {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, w.Code)
		}
	}
}

func TestGateRejectsGarbageToken(t *testing.T) {
	r, _, _, cfg := setupRouter(t, time.Hour)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: "forged"})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestGateAdmitsAuthenticatedSession(t *testing.T) {
	r, _, _, cfg := setupRouter(t, time.Hour)
	cookie := loginAsAdmin(t, r, cfg.Session.CookieName)

	body, contentType := projectForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGateRejectsExpiredSession(t *testing.T) {
	r, _, _, cfg := setupRouter(t, 10*time.Millisecond)
	cookie := loginAsAdmin(t, r, cfg.Session.CookieName)
	time.Sleep(25 * time.Millisecond)

	body, contentType := projectForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired session, got %d", w.Code)
	}
}

func TestPublicRoutesNeedNoSession(t *testing.T) {
	r, _, _, _ := setupRouter(t, time.Hour)

	public := []string{"/api/projects", "/api/clients", "/api/settings", "/healthz", "/api/auth/check"}
	for _, path := range public {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
}
