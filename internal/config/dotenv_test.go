package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestLoadDotEnv_ParsesValuesAndSkipsNoise(t *testing.T) {
	t.Setenv("WQ_PLAIN", "")
	t.Setenv("WQ_EXPORTED", "")
	t.Setenv("WQ_QUOTED", "")
	t.Setenv("WQ_SINGLE", "")

	path := writeDotEnv(t, `
# local overrides

WQ_PLAIN=one
export WQ_EXPORTED=two
WQ_QUOTED="three four"
WQ_SINGLE='five'
not-a-pair
`)

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	want := map[string]string{
		"WQ_PLAIN":    "one",
		"WQ_EXPORTED": "two",
		"WQ_QUOTED":   "three four",
		"WQ_SINGLE":   "five",
	}
	for key, expected := range want {
		if got := os.Getenv(key); got != expected {
			t.Fatalf("%s=%q, want %q", key, got, expected)
		}
	}
}

func TestLoadDotEnv_ExistingEnvWins(t *testing.T) {
	t.Setenv("WQ_KEEP", "from-env")

	path := writeDotEnv(t, "WQ_KEEP=from-file\n")
	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("WQ_KEEP"); got != "from-env" {
		t.Fatalf("WQ_KEEP=%q, want %q", got, "from-env")
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing file should be ignored, got: %v", err)
	}
}
