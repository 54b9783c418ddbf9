package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/marcou-app/marcou/internal/config"
	dbpkg "github.com/marcou-app/marcou/internal/db"
	"github.com/marcou-app/marcou/internal/infra/lock"
	"github.com/marcou-app/marcou/internal/infra/media"
	"github.com/marcou-app/marcou/internal/routes"
	"github.com/marcou-app/marcou/internal/timezone"
)

func main() {

	cfg := config.Load()

	setupLogger(cfg)
	timezone.Init(cfg.Timezone)

	db := dbpkg.NewDB(cfg)

	// Lock distribuído é opcional: sem Redis a reserva depende só da
	// transação + constraint de exclusão no Postgres.
	var locker lock.StaffLocker
	if cfg.RedisURL != "" {
		rl, err := lock.NewRedisStaffLock(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		locker = rl
		log.Info().Msg("redis staff lock enabled")
	}

	uploader := media.NewUploader(cfg)
	if uploader == nil {
		log.Warn().Msg("media upload disabled: S3_BUCKET not set")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, uploader)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
