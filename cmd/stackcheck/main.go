package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/stackcheck/internal/api"
	"github.com/terraincognita07/stackcheck/internal/cli"
	"github.com/terraincognita07/stackcheck/internal/config"
	"github.com/terraincognita07/stackcheck/internal/db"
	"github.com/terraincognita07/stackcheck/internal/logger"
	"github.com/terraincognita07/stackcheck/internal/metrics"
	"github.com/terraincognita07/stackcheck/internal/services"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "stackcheck",
		Short:        "Supplement effect inference engine",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCommand(),
		newRecomputeCommand(),
		newMigrateCommand(),
		newTokenCommand(),
		newKeygenCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newRecomputeCommand() *cobra.Command {
	var profileID uint
	command := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute and store every insight for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(func(cfg config.Config, log *logger.Logger, database *gorm.DB) error {
				recorder := metrics.NewRecorder(prometheus.NewRegistry())
				repositories := db.NewRepositories(database)
				service := services.NewEffectService(
					repositories.DailyEntries,
					repositories.Supplements,
					repositories.PatternInsights,
					cfg.Thresholds,
					cfg.Concurrency,
					cfg.Location,
					log,
					recorder,
				)
				return cli.RunRecomputeCommand(cmd.Context(), service, profileID, cmd.OutOrStdout())
			})
		},
	}
	command.Flags().UintVar(&profileID, "profile", 0, "profile id to recompute")
	_ = command.MarkFlagRequired("profile")
	return command
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(func(cfg config.Config, _ *logger.Logger, database *gorm.DB) error {
				return cli.RunMigrateCommand(cmd.Context(), database, cfg.DBDriver, cmd.OutOrStdout())
			})
		},
	}
}

func newTokenCommand() *cobra.Command {
	var profileID uint
	var ttl time.Duration
	command := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return cli.RunTokenCommand(cfg.SecretKey, profileID, ttl, time.Now(), cmd.OutOrStdout())
		},
	}
	command.Flags().UintVar(&profileID, "profile", 0, "profile id the token is scoped to")
	command.Flags().DurationVar(&ttl, "ttl", api.DefaultProfileTokenTTL, "token lifetime")
	_ = command.MarkFlagRequired("profile")
	return command
}

func newKeygenCommand() *cobra.Command {
	var length int
	command := &cobra.Command{
		Use:   "keygen",
		Short: "Print a random SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunKeygenCommand(length, cmd.OutOrStdout())
		},
	}
	command.Flags().IntVar(&length, "length", 48, "key length")
	return command
}

func runServe(ctx context.Context) error {
	return withEnvironment(func(cfg config.Config, log *logger.Logger, database *gorm.DB) error {
		secretKey, err := config.ResolveSecretKey(cfg.SecretKey)
		if err != nil {
			return err
		}

		handler, err := api.NewHandler(database, api.Options{
			SecretKey:   secretKey,
			Location:    cfg.Location,
			Thresholds:  cfg.Thresholds,
			Concurrency: cfg.Concurrency,
			Logger:      log,
			Recorder:    metrics.NewRecorder(prometheus.DefaultRegisterer),
			Gatherer:    prometheus.DefaultGatherer,
		})
		if err != nil {
			return fmt.Errorf("handler init failed: %w", err)
		}

		app := newApp()
		api.RegisterRoutes(app, handler)

		sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()

		go func() {
			<-sigCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error("server shutdown failed", "error", err)
			}
		}()

		log.Info("stackcheck listening",
			"addr", "0.0.0.0:"+cfg.Port,
			"db_driver", cfg.DBDriver,
			"tz", cfg.Location.String(),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	})
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Stackcheck",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	return app
}

// withEnvironment loads config, builds the logger and opens the database
// for the duration of run.
func withEnvironment(run func(cfg config.Config, log *logger.Logger, database *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer log.Sync()

	database, err := db.Open(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	return run(cfg, log, database)
}
