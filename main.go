package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"market-simulation/auth"
	"market-simulation/cli"
	"market-simulation/config"
	"market-simulation/logger"
	models "market-simulation/model"
	"market-simulation/service"
	"market-simulation/store"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "market:", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out, errOut io.Writer) error {
	cfg, err := config.Load(args, out)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, errOut)

	gate, err := newGate(cfg)
	if err != nil {
		return err
	}

	// Signals only interrupt the catalog load. Once the session is up,
	// Ctrl-C ends the process as usual.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	seed, err := loadSeed(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error().Err(err).Str("seed", cfg.Seed).Msg("startup failed")
		return err
	}

	st, err := store.NewMemoryStore(seed...)
	if err != nil {
		return err
	}
	svc := service.NewService(st, log)
	var serviceInterface service.ServiceInterface = svc

	log.Info().
		Str("seed", cfg.Seed).
		Int("products", len(seed)).
		Str("admin_mode", cfg.AdminMode).
		Msg("session started")

	// Nothing cancels the session context: a blocked stdin read cannot be
	// interrupted, so Ctrl-C is left to end the process.
	return cli.NewConsole(serviceInterface, gate, in, out, log).Run(context.Background())
}

func newGate(cfg config.Config) (auth.CredentialChecker, error) {
	if cfg.AdminMode != config.AdminRegistry {
		return auth.NewSharedSecret(cfg.AdminSecret), nil
	}
	reg := auth.NewRegistry(cfg.BcryptCost)
	if err := reg.Add(cfg.AdminCPF, cfg.AdminSecret); err != nil {
		return nil, errors.Wrap(err, "register first admin")
	}
	return reg, nil
}

func loadSeed(ctx context.Context, cfg config.Config, log zerolog.Logger) ([]models.Product, error) {
	switch cfg.Seed {
	case config.SeedNone:
		return nil, nil
	case config.SeedPostgres:
		cat, err := store.OpenPostgresCatalog(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "open catalog database")
		}
		defer cat.Close()

		products, err := cat.LoadProducts(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "load catalog")
		}
		log.Debug().Int("products", len(products)).Msg("catalog loaded from postgres")
		return products, nil
	default:
		return models.DefaultCatalog(), nil
	}
}
