// Package cli wires the three processes this module ships: the HTTP API,
// the catalog seeder and the Telegram bot.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"salesacademy/internal/auth"
	"salesacademy/internal/bot"
	"salesacademy/internal/catalog"
	"salesacademy/internal/config"
	"salesacademy/internal/repository"
	"salesacademy/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "salesacademy",
	Short: "Telegram Mini App backend for the sales training catalog",
}

var catalogPath string

func init() {
	seedCmd.Flags().StringVarP(&catalogPath, "file", "f", "catalog.yaml", "canonical catalog definition")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(botCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Println("logger:", err)
		os.Exit(1)
	}
	return log
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()
		defer log.Sync()

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("config", zap.Error(err))
		}
		if cfg.DevAdmin {
			log.Warn("DEV_ADMIN enabled: POST /dev/login available")
		}

		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("db", zap.Error(err))
		}

		srv := server.New(
			cfg,
			log,
			auth.NewSessionManager(cfg.SessionHashKey, cfg.SessionBlockKey, cfg.SecureCookies),
			repository.NewUserRepository(db),
			repository.NewTopicRepository(db),
			repository.NewSubtopicRepository(db),
			repository.NewLessonRepository(db),
		)
		if err := srv.Run(); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reconcile the catalog against the canonical definition",
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()
		defer log.Sync()

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("config", zap.Error(err))
		}

		def, err := catalog.LoadDefinition(catalogPath)
		if err != nil {
			log.Fatal("definition", zap.Error(err))
		}

		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("db", zap.Error(err))
		}

		reconciler := catalog.NewReconciler(
			repository.NewTopicRepository(db),
			repository.NewSubtopicRepository(db),
			repository.NewLessonRepository(db),
			log,
		)
		if err := reconciler.Run(context.Background(), def); err != nil {
			log.Fatal("reconcile", zap.Error(err))
		}
	},
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()
		defer log.Sync()

		cfg, err := config.Load()
		if err != nil {
			log.Fatal("config", zap.Error(err))
		}
		if cfg.WebAppURL == "" {
			log.Fatal("config", zap.String("missing", "WEBAPP_URL"))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b, err := bot.New(cfg.BotToken, cfg.WebAppURL, log)
		if err != nil {
			log.Fatal("bot", zap.Error(err))
		}
		if err := b.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatal("bot stopped", zap.Error(err))
		}
		log.Info("shutdown complete")
	},
}
