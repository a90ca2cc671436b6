package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stockflow/internal/app"
	"stockflow/internal/config"
	"stockflow/internal/database"
	"stockflow/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          "stockflow",
		Short:        "Product catalog service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")

	root.AddCommand(newServeCmd(&configFile), newMigrateCmd(&configFile))
	return root
}

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize application")
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("error releasing resources")
		}
	}()

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.App.Port).Str("base_path", cfg.App.BasePath).Msg("starting server")
		listenErr <- a.Fiber.Listen(cfg.App.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-listenErr:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	if err := a.Fiber.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
		return err
	}
	log.Info().Msg("server gracefully stopped")
	return nil
}

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			return migrate(cfg.Database, command, logger.New(cfg.Log.Level, cfg.Log.Format))
		},
	}
}

var errNoSchema = errors.New("the memory driver has no schema to migrate")

func migrate(cfg config.DatabaseConfig, command string, log zerolog.Logger) error {
	if cfg.Driver == config.DriverMemory {
		return errNoSchema
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, cfg.Driver, command, log); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
