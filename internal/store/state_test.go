package store

import (
	"testing"
	"time"

	"github.com/quiclick/qc/internal/models"
)

func TestSettingsDefaultWhenAbsent(t *testing.T) {
	s := NewMemory()

	settings, err := Settings(s)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	want := models.DefaultSettings()
	if settings != want {
		t.Errorf("defaults: got %+v, want %+v", settings, want)
	}

	settings.TilesPerRow = 5
	if err := SetSettings(s, settings); err != nil {
		t.Fatalf("set: %v", err)
	}
	settings, err = Settings(s)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.TilesPerRow != 5 {
		t.Errorf("stored settings lost: %+v", settings)
	}
}

func TestIDMapDefaultsToEmpty(t *testing.T) {
	s := NewMemory()

	m, err := IDMap(s)
	if err != nil {
		t.Fatalf("id map: %v", err)
	}
	if m == nil {
		t.Fatal("expected non-nil map")
	}

	m[1750000000000] = 7
	if err := SetIDMap(s, m); err != nil {
		t.Fatalf("set: %v", err)
	}
	m, err = IDMap(s)
	if err != nil {
		t.Fatalf("id map: %v", err)
	}
	if m[1750000000000] != 7 {
		t.Errorf("mapping lost: %v", m)
	}
}

func TestAuthStateRoundTrip(t *testing.T) {
	s := NewMemory()

	auth, err := AuthState(s)
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if auth.Authenticated {
		t.Error("fresh store must be unauthenticated")
	}

	user := models.User{Sub: "abc", Email: "me@example.com"}
	in := models.AuthState{
		Authenticated: true,
		User:          &user,
		LastChecked:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := SetAuthState(s, in); err != nil {
		t.Fatalf("set: %v", err)
	}
	auth, err = AuthState(s)
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if !auth.Authenticated || auth.User == nil || auth.User.Email != "me@example.com" {
		t.Errorf("round trip: %+v", auth)
	}
}
