package syncconfig

import (
	"testing"
)

func TestServerURLPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Setenv("QC_SERVER_URL", "")
	if got := GetServerURL(); got != defaultServerURL {
		t.Errorf("default: got %q", got)
	}

	if err := SaveConfig(&Config{ServerURL: "https://config.example.com"}); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if got := GetServerURL(); got != "https://config.example.com" {
		t.Errorf("config: got %q", got)
	}

	t.Setenv("QC_SERVER_URL", "https://env.example.com")
	if got := GetServerURL(); got != "https://env.example.com" {
		t.Errorf("env overrides config: got %q", got)
	}
}

func TestSessionFromAuthFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QC_SESSION", "")

	if HasSession() {
		t.Error("fresh config must have no session")
	}

	if err := SaveAuth(&AuthCredentials{Session: "cookie-value", Email: "me@example.com"}); err != nil {
		t.Fatalf("save auth: %v", err)
	}
	if got := GetSession(); got != "cookie-value" {
		t.Errorf("auth file: got %q", got)
	}

	t.Setenv("QC_SESSION", "env-cookie")
	if got := GetSession(); got != "env-cookie" {
		t.Errorf("env overrides file: got %q", got)
	}

	t.Setenv("QC_SESSION", "")
	if err := ClearAuth(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if HasSession() {
		t.Error("session survived ClearAuth")
	}
	// Clearing twice is fine.
	if err := ClearAuth(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestAutoSyncDefaultsTrue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QC_AUTO_SYNC", "")

	if !GetAutoSync() {
		t.Error("default must be true")
	}

	off := false
	if err := SaveConfig(&Config{AutoSync: &off}); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if GetAutoSync() {
		t.Error("config false ignored")
	}

	t.Setenv("QC_AUTO_SYNC", "true")
	if !GetAutoSync() {
		t.Error("env true must override config")
	}
	t.Setenv("QC_AUTO_SYNC", "0")
	if GetAutoSync() {
		t.Error("env 0 must disable")
	}
}
