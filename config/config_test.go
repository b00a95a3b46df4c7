package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "console" {
		t.Fatalf("unexpected log defaults: %+v", cfg)
	}
	if cfg.AdminMode != AdminSecret || cfg.AdminSecret != "1234" {
		t.Fatalf("unexpected admin defaults: %+v", cfg)
	}
	if cfg.Seed != SeedDefault || cfg.BcryptCost != 10 {
		t.Fatalf("unexpected seed defaults: %+v", cfg)
	}
}

func TestLoad_EnvAndFlagPrecedence(t *testing.T) {
	t.Setenv("MARKET_SEED", "none")
	t.Setenv("MARKET_LOG_LEVEL", "debug")
	t.Setenv("MARKET_BCRYPT_COST", "4")

	cfg, err := Load([]string{"--log-level", "error"}, io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != SeedNone {
		t.Fatalf("env not applied: seed=%q", cfg.Seed)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("flag should beat env: level=%q", cfg.LogLevel)
	}
	if cfg.BcryptCost != 4 {
		t.Fatalf("expected bcrypt cost 4, got %d", cfg.BcryptCost)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.env")
	if err := os.WriteFile(path, []byte("MARKET_LOG_FORMAT=json\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("MARKET_LOG_FORMAT") })

	cfg, err := Load([]string{"--env-file", path}, io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("env file not applied: %+v", cfg)
	}
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	_, err := Load([]string{"--env-file", filepath.Join(t.TempDir(), "nope.env")}, io.Discard)
	if err == nil {
		t.Fatalf("expected error for missing explicit env file")
	}
}

func TestLoad_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := Load([]string{"--help"}, &buf)
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected pflag.ErrHelp, got %v", err)
	}
	if !strings.Contains(buf.String(), "--seed") {
		t.Fatalf("usage missing flags: %q", buf.String())
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := [][]string{
		{"--seed", "postgres"},
		{"--seed", "s3"},
		{"--admin-mode", "ldap"},
		{"--admin-secret", ""},
		{"--log-level", "loud"},
		{"--log-format", "xml"},
		{"--admin-mode", "registry", "--admin-cpf", ""},
	}
	for _, args := range cases {
		if _, err := Load(args, io.Discard); err == nil {
			t.Fatalf("Load(%v): expected error", args)
		}
	}

	t.Setenv("MARKET_BCRYPT_COST", "ten")
	if _, err := Load(nil, io.Discard); err == nil {
		t.Fatalf("expected error for non-numeric MARKET_BCRYPT_COST")
	}
}

func TestLoad_PostgresSeed(t *testing.T) {
	cfg, err := Load([]string{"--seed", "postgres", "--database-url", "postgres://localhost/market?sslmode=disable"}, io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != SeedPostgres || cfg.DatabaseURL == "" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
