package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/sketchquest/internal/common/clock"
	"github.com/KirkDiggler/sketchquest/internal/common/logger"
	"github.com/KirkDiggler/sketchquest/internal/common/roomcode"
	"github.com/KirkDiggler/sketchquest/internal/common/uuid"
	"github.com/KirkDiggler/sketchquest/internal/config"
	"github.com/KirkDiggler/sketchquest/internal/handlers/ws"
	"github.com/KirkDiggler/sketchquest/internal/random"
	"github.com/KirkDiggler/sketchquest/internal/repositories/session"
	"github.com/KirkDiggler/sketchquest/internal/repositories/word"
	gameService "github.com/KirkDiggler/sketchquest/internal/services/game"
)

func main() {
	configPath := flag.String("config", "", "optional env file, defaults to .env when present")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "sketchquest: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the word store
	words, closeWords, err := openWordStore(ctx, cfg, &log)
	if err != nil {
		return err
	}
	defer closeWords.Close()

	// Initialize the game service
	rng := random.New(&random.Config{})
	hub := ws.NewHub(&log)
	gameSvc, err := gameService.New(&gameService.Config{
		SessionRepo:       session.NewMemory(),
		WordRepo:          words,
		Broadcaster:       hub,
		Clock:             &clock.DefaultClock{},
		RoomCodes:         roomcode.New(rng, roomcode.DefaultLength),
		Random:            rng,
		Logger:            &log,
		RoundDuration:     cfg.Game.RoundDuration,
		NextRoundDelay:    cfg.Game.NextRoundDelay,
		WordOptions:       cfg.Game.WordOptions,
		GuessPoints:       cfg.Game.GuessPoints,
		DrawerPoints:      cfg.Game.DrawerPoints,
		DefaultMaxRounds:  cfg.Game.DefaultMaxRounds,
		DefaultMaxPlayers: cfg.Game.DefaultMaxPlayers,
		AutoCreateOnJoin:  cfg.Game.AutoCreateOnJoin,
		WordFetchTimeout:  cfg.Words.FetchTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}
	defer gameSvc.Shutdown()

	handler, err := ws.New(&ws.Config{
		GameService:       gameSvc,
		Hub:               hub,
		UUID:              uuid.New(),
		Logger:            &log,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		MessagesPerSecond: cfg.Client.MessagesPerSecond,
		MessageBurst:      cfg.Client.MessageBurst,
	})
	if err != nil {
		return fmt.Errorf("failed to create websocket handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           ws.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("word_store", cfg.Words.Store).Msg("server listening")
		serveErr <- server.ListenAndServe()
	}()

	// Wait for interrupt signal to gracefully shutdown
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// hijacked websocket connections are not tracked by Shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
	}

	log.Info().Msg("server has been shut down")
	return nil
}

// openWordStore connects the configured backend and seeds it when asked
func openWordStore(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (word.Repository, io.Closer, error) {
	var (
		repo   word.Repository
		closer io.Closer
	)

	switch cfg.Words.Store {
	case config.WordStoreSQLite:
		sqliteRepo, err := word.OpenSQLite(cfg.Words.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, closer = sqliteRepo, sqliteRepo
	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisRepo, err := word.NewRedis(&word.Config{
			RedisClient: redisClient,
			WordsKey:    cfg.Redis.WordsKey,
		})
		if err != nil {
			redisClient.Close()
			return nil, nil, err
		}
		repo, closer = redisRepo, redisClient
	}

	if cfg.Words.Seed {
		seedCtx, cancel := context.WithTimeout(ctx, cfg.Words.FetchTimeout)
		defer cancel()

		added, err := word.SeedIfEmpty(seedCtx, repo, word.DefaultWords)
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
		if added > 0 {
			log.Info().Int("words", added).Msg("seeded default word list")
		}
	}

	return repo, closer, nil
}
