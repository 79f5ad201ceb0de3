// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("SESSION_TOKEN_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-session-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.SeedDemo {
		t.Error("expected seed-demo to default off")
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{"-session-salt", "s1"}); err == nil {
		t.Error("expected error for missing database URL")
	}
}

func TestParseFlags_MissingSalt(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{"-d", "file:test.db"}); err == nil {
		t.Error("expected error for missing SESSION_TOKEN_SALT")
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{"-d", "x", "-t", "mysql", "-session-salt", "s1"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestParseFlags_SeedDemoEnv(t *testing.T) {
	os.Setenv("SEED_DEMO", "true")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-session-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.SeedDemo {
		t.Error("expected SEED_DEMO env to enable demo seeding")
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "postgres passes through",
			cfg:      Config{DatabaseType: "postgres", DatabaseURL: "postgres://localhost/db"},
			expected: "postgres://localhost/db",
		},
		{
			name:     "sqlite gets foreign_keys pragma",
			cfg:      Config{DatabaseType: "sqlite", DatabaseURL: "file:pollcast.db"},
			expected: "file:pollcast.db?_pragma=foreign_keys(1)",
		},
		{
			name:     "sqlite with existing params appends",
			cfg:      Config{DatabaseType: "sqlite", DatabaseURL: "file:pollcast.db?mode=rwc"},
			expected: "file:pollcast.db?mode=rwc&_pragma=foreign_keys(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DSN(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDriverName(t *testing.T) {
	if got := (Config{DatabaseType: "postgres"}).DriverName(); got != "postgres" {
		t.Errorf("expected postgres, got %s", got)
	}
	if got := (Config{DatabaseType: "sqlite"}).DriverName(); got != "sqlite" {
		t.Errorf("expected sqlite, got %s", got)
	}
}
