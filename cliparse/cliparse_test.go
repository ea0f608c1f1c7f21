// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://gereja.example")

	cfg, err := ParseFlags([]string{"-env", ""})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected ttl 2h, got %s", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://gereja.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := ParseFlags([]string{"-env", ""})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 5001 {
		t.Errorf("expected default port 5001, got %d", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default ttl 24h, got %s", cfg.TokenTTL)
	}
	if cfg.ChurchName != "GEREJA XYZ" {
		t.Errorf("unexpected church name %q", cfg.ChurchName)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-env", "", "-p", "8080", "-d", "postgres://cli", "-jwt-secret", testSecret})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://cli" {
		t.Errorf("unexpected database url %q", cfg.DatabaseURL)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"JWT_SECRET": testSecret}},
		{"missing secret", map[string]string{"DATABASE_URL": "postgres://test"}},
		{"short secret", map[string]string{"DATABASE_URL": "postgres://test", "JWT_SECRET": "short"}},
		{"bad port", map[string]string{"DATABASE_URL": "postgres://test", "JWT_SECRET": testSecret, "PORT": "abc"}},
		{"bad ttl", map[string]string{"DATABASE_URL": "postgres://test", "JWT_SECRET": testSecret, "TOKEN_TTL": "-1h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"DATABASE_URL", "JWT_SECRET", "PORT", "TOKEN_TTL"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags([]string{"-env", ""}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CHURCH_NAME", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("CHURCH_NAME")

	path := filepath.Join(t.TempDir(), ".env")
	content := "DATABASE_URL=postgres://from-file\nJWT_SECRET=" + testSecret + "\nCHURCH_NAME=GKJ Salatiga\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("CHURCH_NAME")
	})

	cfg, err := ParseFlags([]string{"-env", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseURL != "postgres://from-file" {
		t.Errorf("expected database url from file, got %q", cfg.DatabaseURL)
	}
	if cfg.ChurchName != "GKJ Salatiga" {
		t.Errorf("expected church name from file, got %q", cfg.ChurchName)
	}
}

func TestParseFlags_MissingEnvFileIgnored(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET", testSecret)

	if _, err := ParseFlags([]string{"-env", filepath.Join(t.TempDir(), "nope.env")}); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
}
