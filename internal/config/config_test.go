package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Database.Name != "homeflix" {
		t.Errorf("Database.Name: got %q, want %q", cfg.Database.Name, "homeflix")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port: got %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Auth.AuthRequestsPerMinute != 5 {
		t.Errorf("Auth.AuthRequestsPerMinute: got %d, want 5", cfg.Auth.AuthRequestsPerMinute)
	}

	tests := []struct {
		name     string
		actual   time.Duration
		expected time.Duration
	}{
		{"ReadTimeout", cfg.Server.ReadTimeout, 15 * time.Second},
		{"WriteTimeout", cfg.Server.WriteTimeout, 15 * time.Second},
		{"IdleTimeout", cfg.Server.IdleTimeout, 60 * time.Second},
	}

	for _, tt := range tests {
		if tt.actual != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.name, tt.actual, tt.expected)
		}
	}
}

func TestLoad_MissingDBPassword(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil, want error for missing DB_PASSWORD")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("DB_NAME", "homeflix_test")
	os.Setenv("SERVER_READ_TIMEOUT", "30s")
	os.Setenv("AUTH_REQUESTS_PER_MINUTE", "10")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Database.Name != "homeflix_test" {
		t.Errorf("Database.Name: got %q, want %q", cfg.Database.Name, "homeflix_test")
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout: got %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Auth.AuthRequestsPerMinute != 10 {
		t.Errorf("AuthRequestsPerMinute: got %d, want 10", cfg.Auth.AuthRequestsPerMinute)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Name:     "homeflix",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=postgres password=secret dbname=homeflix sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN(): got %q, want %q", got, want)
	}
}
