package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"market-simulation/auth"
	"market-simulation/config"
)

func TestRun_DefaultSession(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"--log-format", "json"}, strings.NewReader("1\n7\n"), &out, &errOut)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Arroz") || !strings.Contains(out.String(), "Leaving the market") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRun_EmptyCatalog(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"--seed", "none", "--log-level", "info", "--log-format", "json"}, strings.NewReader("1\n7\n"), &out, &errOut)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "No products registered.") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), `"message":"session started"`) {
		t.Fatalf("missing startup log: %s", errOut.String())
	}
}

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"--help"}, strings.NewReader(""), &out, &errOut); err != nil {
		t.Fatalf("help should not fail: %v", err)
	}
	if !strings.Contains(out.String(), "--admin-mode") {
		t.Fatalf("usage not printed:\n%s", out.String())
	}
}

func TestRun_BadConfig(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"--seed", "csv"}, strings.NewReader(""), &out, &errOut); err == nil {
		t.Fatalf("expected error for unknown seed")
	}
}

func TestNewGate(t *testing.T) {
	gate, err := newGate(config.Config{AdminMode: config.AdminSecret, AdminSecret: "1234"})
	if err != nil {
		t.Fatalf("newGate: %v", err)
	}
	if _, ok := gate.(auth.Directory); ok {
		t.Fatalf("shared secret gate should not manage admins")
	}
	if err := gate.Check(auth.Credentials{Secret: "1234"}); err != nil {
		t.Fatalf("Check: %v", err)
	}

	gate, err = newGate(config.Config{AdminMode: config.AdminRegistry, AdminCPF: "12345678901", AdminSecret: "pw", BcryptCost: 4})
	if err != nil {
		t.Fatalf("newGate registry: %v", err)
	}
	if err := gate.Check(auth.Credentials{Login: "123.456.789-01", Secret: "pw"}); err != nil {
		t.Fatalf("registry Check: %v", err)
	}

	if _, err := newGate(config.Config{AdminMode: config.AdminRegistry, AdminCPF: "123", AdminSecret: "pw"}); err == nil {
		t.Fatalf("expected error for malformed CPF")
	}
}

func TestLoadSeed(t *testing.T) {
	ps, err := loadSeed(context.Background(), config.Config{Seed: config.SeedDefault}, zerolog.Nop())
	if err != nil || len(ps) != 5 {
		t.Fatalf("default seed: %d products, %v", len(ps), err)
	}
	ps, err = loadSeed(context.Background(), config.Config{Seed: config.SeedNone}, zerolog.Nop())
	if err != nil || len(ps) != 0 {
		t.Fatalf("empty seed: %d products, %v", len(ps), err)
	}
}
