package testutil

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"
)

const (
	FirestoreEmulatorHost = "127.0.0.1:7130"
	DefaultRedisAddr      = "127.0.0.1:6379"
	ProjectID             = "demo-test-project"
)

func reachable(host string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// SkipIfFirestoreUnavailable skips the test if the Firestore emulator is not running.
func SkipIfFirestoreUnavailable(t *testing.T) {
	t.Helper()
	if !reachable(FirestoreEmulatorHost) {
		t.Skip("Firestore emulator not available")
	}
}

// SetupFirestoreEmulator points Firestore clients at the emulator.
func SetupFirestoreEmulator(t *testing.T) {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreEmulatorHost)
}

// ClearFirestore removes all documents from the Firestore emulator.
func ClearFirestore(t *testing.T) {
	t.Helper()
	url := fmt.Sprintf("http://%s/emulator/v1/projects/%s/databases/(default)/documents",
		FirestoreEmulatorHost, ProjectID)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to clear Firestore: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
}

// RedisAddr returns the Redis address used by integration tests (REDIS_ADDR or localhost).
func RedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return DefaultRedisAddr
}

// SkipIfRedisUnavailable skips the test if no Redis server answers on RedisAddr.
func SkipIfRedisUnavailable(t *testing.T) {
	t.Helper()
	if !reachable(RedisAddr()) {
		t.Skip("Redis not available")
	}
}

// SkipIfChromeUnavailable skips the test unless a Chrome or Chromium binary is on PATH.
func SkipIfChromeUnavailable(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("Chrome not available")
}
