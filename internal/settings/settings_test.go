package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupSettingsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:settings_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.AutoMigrate(&models.Setting{}); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return db
}

func TestRefreshLoadsSnapshot(t *testing.T) {
	db := setupSettingsDB(t)
	row := models.Setting{
		Key:   SiteNameKey,
		Value: datatypes.JSON([]byte(`"Flipr Studio"`)),
	}
	if errCreate := db.Create(&row).Error; errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	if errRefresh := Refresh(context.Background(), db); errRefresh != nil {
		t.Fatalf("refresh: %v", errRefresh)
	}

	raw, ok := Value(SiteNameKey)
	if !ok {
		t.Fatalf("expected %s in snapshot", SiteNameKey)
	}
	var name string
	if errUnmarshal := json.Unmarshal(raw, &name); errUnmarshal != nil {
		t.Fatalf("unmarshal: %v", errUnmarshal)
	}
	if name != "Flipr Studio" {
		t.Fatalf("unexpected value %q", name)
	}
}

func TestValueUnknownKey(t *testing.T) {
	Store(time.Now(), map[string]json.RawMessage{})
	if _, ok := Value("MISSING"); ok {
		t.Fatalf("expected absent key")
	}
	if _, ok := Value(""); ok {
		t.Fatalf("expected absent empty key")
	}
}

func TestStoreCopiesValues(t *testing.T) {
	payload := []byte(`"original"`)
	Store(time.Now(), map[string]json.RawMessage{"K": payload})
	payload[1] = 'X'

	raw, ok := Value("K")
	if !ok {
		t.Fatalf("expected key present")
	}
	if string(raw) != `"original"` {
		t.Fatalf("snapshot aliased caller bytes: %s", raw)
	}

	// mutating the returned copy must not corrupt the snapshot
	raw[1] = 'Y'
	again, _ := Value("K")
	if string(again) != `"original"` {
		t.Fatalf("snapshot aliased returned bytes: %s", again)
	}
}

func TestAllReturnsEveryKey(t *testing.T) {
	Store(time.Now(), map[string]json.RawMessage{
		"A": []byte(`1`),
		"B": []byte(`2`),
	})
	all := All()
	if len(all) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(all))
	}
	if string(all["A"]) != "1" || string(all["B"]) != "2" {
		t.Fatalf("unexpected values %v", all)
	}
}
