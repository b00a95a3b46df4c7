// Package config resolves runtime settings from flags, the environment and
// an optional .env file, in that order of precedence.
package config

import (
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	SeedDefault  = "default"
	SeedNone     = "none"
	SeedPostgres = "postgres"

	AdminSecret   = "secret"
	AdminRegistry = "registry"
)

type Config struct {
	LogLevel  string
	LogFormat string

	AdminMode   string
	AdminSecret string
	AdminCPF    string
	BcryptCost  int

	Seed        string
	DatabaseURL string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load parses args (without the program name). It returns pflag.ErrHelp
// when help was requested; usage has then been written to out.
func Load(args []string, out io.Writer) (Config, error) {
	flags := pflag.NewFlagSet("market", pflag.ContinueOnError)
	flags.SetOutput(out)

	envFile := flags.String("env-file", ".env", "dotenv file to read before the environment")
	logLevel := flags.String("log-level", "warn", "log level: debug, info, warn, error [MARKET_LOG_LEVEL]")
	logFormat := flags.String("log-format", "console", "log format: console or json [MARKET_LOG_FORMAT]")
	adminMode := flags.String("admin-mode", AdminSecret, "admin gate: secret or registry [MARKET_ADMIN_MODE]")
	adminSecret := flags.String("admin-secret", "1234", "admin secret [MARKET_ADMIN_SECRET]")
	adminCPF := flags.String("admin-cpf", "12345678901", "CPF of the first admin in registry mode [MARKET_ADMIN_CPF]")
	bcryptCost := flags.Int("bcrypt-cost", 10, "bcrypt cost for registry secrets [MARKET_BCRYPT_COST]")
	seed := flags.String("seed", SeedDefault, "initial catalog: default, none or postgres [MARKET_SEED]")
	dbURL := flags.String("database-url", "", "Postgres DSN for --seed=postgres [MARKET_DATABASE_URL]")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil {
		// a missing default file is fine, a missing explicit one is not
		if !errors.Is(err, fs.ErrNotExist) || flags.Changed("env-file") {
			return Config{}, errors.Wrapf(err, "load %s", *envFile)
		}
	}

	pick := func(flag, env string, val string) string {
		if flags.Changed(flag) {
			return val
		}
		return getenv(env, val)
	}

	cfg := Config{
		LogLevel:    pick("log-level", "MARKET_LOG_LEVEL", *logLevel),
		LogFormat:   pick("log-format", "MARKET_LOG_FORMAT", *logFormat),
		AdminMode:   pick("admin-mode", "MARKET_ADMIN_MODE", *adminMode),
		AdminSecret: pick("admin-secret", "MARKET_ADMIN_SECRET", *adminSecret),
		AdminCPF:    pick("admin-cpf", "MARKET_ADMIN_CPF", *adminCPF),
		Seed:        pick("seed", "MARKET_SEED", *seed),
		DatabaseURL: pick("database-url", "MARKET_DATABASE_URL", *dbURL),
		BcryptCost:  *bcryptCost,
	}
	if !flags.Changed("bcrypt-cost") {
		if v := os.Getenv("MARKET_BCRYPT_COST"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.Wrap(err, "MARKET_BCRYPT_COST")
			}
			cfg.BcryptCost = n
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return errors.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	switch c.AdminMode {
	case AdminSecret:
		if c.AdminSecret == "" {
			return errors.New("admin secret cannot be empty")
		}
	case AdminRegistry:
		if c.AdminCPF == "" || c.AdminSecret == "" {
			return errors.New("registry mode needs an admin CPF and secret")
		}
	default:
		return errors.Errorf("unknown admin mode %q", c.AdminMode)
	}
	switch c.Seed {
	case SeedDefault, SeedNone:
	case SeedPostgres:
		if c.DatabaseURL == "" {
			return errors.New("seed postgres requires a database URL")
		}
	default:
		return errors.Errorf("unknown seed %q", c.Seed)
	}
	return nil
}
