package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinic-api/internal/config"
	"github.com/harentsoaR/clinic-api/internal/database"
	"github.com/harentsoaR/clinic-api/internal/handlers"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-api",
		Short: "Patient, doctor and assignment API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.Development() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	zerolog.DefaultContextLogger = &logger

	// --- Database Connection ---
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	if err := database.Migrate(db); err != nil {
		logger.Error().Err(err).Msg("failed to migrate database")
		return err
	}
	logger.Info().Msg("connected to database")

	// --- Audit Trail ---
	audit, closeAudit, err := openAudit(cfg, logger)
	if err != nil {
		return err
	}
	defer closeAudit()

	// --- Handlers ---
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	h := handlers.NewHandler(store.New(db), tokens, audit)

	// --- Gin Router ---
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	h.RegisterRoutes(r.Group("/api"))

	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// openAudit connects the assignment audit trail to Mongo when configured.
func openAudit(cfg *config.Config, logger zerolog.Logger) (services.AuditRecorder, func(), error) {
	if cfg.MongoURI == "" {
		logger.Warn().Msg("MONGO_URI not set, assignment audit trail disabled")
		return services.NopAuditRecorder{}, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to MongoDB")
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Error().Err(err).Msg("failed to ping MongoDB")
		return nil, nil, err
	}
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	return services.NewMongoAuditRecorder(client.Database(cfg.MongoDatabase)), closeFn, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
