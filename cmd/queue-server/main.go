package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-queue/internal/auth"
	"hospital-queue/internal/config"
	"hospital-queue/internal/database"
	"hospital-queue/internal/logging"
	"hospital-queue/internal/models"
	"hospital-queue/internal/repository"
	"hospital-queue/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "queue-server",
		Short:        "Hospital queue management API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config, builds the logger and opens the database.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg)
	if err := database.InitDB(cfg, logger); err != nil {
		return nil, logger, err
	}
	return cfg, logger, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(database.DB)

			if cfg.AutoMigrate {
				logger.Info().Msg("running auto-migration")
				if err := database.Migrate(database.DB); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sessions, closeSessions, err := openSessionStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSessions()

			if !cfg.IsDev() {
				gin.SetMode(gin.ReleaseMode)
			}

			app, err := server.Build(server.Config{
				DB:           database.DB,
				Sessions:     sessions,
				SessionTTL:   cfg.SessionTTL,
				PasswordCost: cfg.BcryptCost,
				CORSOrigins:  cfg.CORSOrigins,
				Log:          logger,
			})
			if err != nil {
				return err
			}

			logger.Info().
				Str("session_store", cfg.SessionStore).
				Strs("cors_origins", cfg.CORSOrigins).
				Msg("starting hospital queue server")
			if err := app.Run(ctx, ":"+cfg.ListenPort); err != nil {
				logger.Error().Err(err).Msg("server stopped with error")
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}
}

// openSessionStore returns the configured session store and a func that
// releases it.
func openSessionStore(ctx context.Context, cfg *config.Config) (auth.SessionStore, func(), error) {
	if cfg.SessionStore != "redis" {
		return auth.NewMemoryStore(nil), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return auth.NewRedisStore(client, nil), func() { _ = client.Close() }, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(database.DB)

			if err := database.Migrate(database.DB); err != nil {
				return err
			}
			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var name, email, password, phone string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(database.DB)

			svc := auth.NewService(repository.NewUsers(database.DB), auth.NewMemoryStore(nil), cfg.SessionTTL, nil,
				auth.WithPasswordCost(cfg.BcryptCost))
			user, err := svc.Register(cmd.Context(), auth.RegisterInput{
				Name:     name,
				Email:    email,
				Password: password,
				Phone:    phone,
				Role:     models.RoleAdmin,
			})
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin created")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Admin display name")
	cmd.Flags().StringVar(&email, "email", "", "Admin login email")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (at least 6 characters)")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
