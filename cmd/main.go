package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"

	"scam-radar/ai"
	"scam-radar/auth"
	"scam-radar/dataset"
	transport "scam-radar/infrastructure/http"
	"scam-radar/infrastructure/storage"
	"scam-radar/ratelimit"
	"scam-radar/services"
	"scam-radar/sink"
	"scam-radar/watchlist"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Model artifacts & reference corpus
	artifacts, err := ai.LoadArtifacts(config.VectorizerPath, config.ClassifierPath, config.ClustersPath, log)
	if err != nil {
		return fmt.Errorf("model artifacts: %w", err)
	}

	reference, err := dataset.Load(config.DatasetPath, artifacts.Vectorizer, log)
	if err != nil {
		return fmt.Errorf("reference corpus: %w", err)
	}

	index, err := dataset.BuildIndex(bluge.DefaultConfig(config.BlugeFilepath), reference, log)
	if err != nil {
		return fmt.Errorf("search index: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = index.Close()
	}()

	// 4. Pipeline components
	phrases, err := loadWatchlistPhrases(config.WatchlistPath)
	if err != nil {
		return fmt.Errorf("watchlist: %w", err)
	}
	wl, err := watchlist.New(phrases, log)
	if err != nil {
		return fmt.Errorf("watchlist: %w", err)
	}

	limiter := ratelimit.NewSlidingWindow(config.RateLimitWindow, config.RateLimitMax, log)
	auditRepository := storage.NewAuditRepository(db, log)
	recorder := sink.NewFanout(sink.NewCSVRecorder(config.AuditCSVPath, log), auditRepository)

	classifier := services.NewClassifierService(limiter, artifacts.Vectorizer, artifacts.Scorer, wl, recorder, log)
	retrieval := services.NewRetrievalService(artifacts.Vectorizer, artifacts.Scorer, artifacts.Clusters, reference, index, log)
	tokens := auth.NewTokenManager(config.AuthSecret, config.AuthTokenDuration)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Background eviction of idle rate-limiter entries
	go func() {
		ticker := time.NewTicker(config.RateLimitWindow)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if evicted := limiter.PruneIdle(now); evicted > 0 {
					log.Debug("Evicted idle senders", "count", evicted)
				}
			}
		}
	}()

	// 7. HTTP Server Setup
	server := transport.NewServer(
		classifier, retrieval, auditRepository, limiter, reference,
		tokens, config.OperatorPasswordHash, config.TopSimilar, log,
	)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{Addr: address, Handler: server.Handler()}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}

// loadWatchlistPhrases reads one phrase per line, skipping blanks and
// '#' comments. An empty path selects the built-in phrase list.
func loadWatchlistPhrases(path string) ([]string, error) {
	if path == "" {
		return watchlist.DefaultPhrases(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := lo.Map(strings.Split(string(content), "\n"), func(line string, _ int) string {
		return strings.TrimSpace(line)
	})
	return lo.Filter(lines, func(line string, _ int) bool {
		return line != "" && !strings.HasPrefix(line, "#")
	}), nil
}
