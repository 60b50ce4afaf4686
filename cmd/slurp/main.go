package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/adapters/script"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/config"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/exitcode"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/slurp"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/stage"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/storage"
)

func main() {
	// Configure the global logger
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// Parse CLI flags
	src := flag.String("src", "", "Local file to slurp")
	runIDStr := flag.String("run-id", "", "Run identifier (UUIDv7, generated when empty)")
	remove := flag.Bool("remove", false, "Remove the local file after a successful upload (takes precedence over COMPLETE_DIR)")
	flag.Parse()

	if *src == "" {
		slog.Error("src is required")
		fmt.Fprintf(os.Stderr, "Usage: src must be provided\n")
		os.Exit(exitcode.InputError)
	}

	runID := model.RunID(*runIDStr)
	if runID == "" {
		var err error
		if runID, err = model.NewRunID(); err != nil {
			slog.Error("failed to generate run-id", "error", err)
			os.Exit(exitcode.InputError)
		}
	}
	if err := runID.Validate(); err != nil {
		slog.Error("invalid run-id", "error", err)
		fmt.Fprintf(os.Stderr, "Usage: run-id must be a UUIDv7\n")
		os.Exit(exitcode.InputError)
	}

	// Ensure environment variables are loaded
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load env vars", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	minioClient, err := storage.NewMinIOClient(ctx, storage.MinIOConfig{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		Bucket:    cfg.MinIOBucket,
		UseSSL:    cfg.MinIOUseSSL,
	})
	if err != nil {
		slog.Error("failed to initialize minio client", "error", err)
		os.Exit(exitcode.StorageError)
	}

	svc := slurp.NewService(
		script.NewRunner(cfg.ScriptTimeout),
		minioClient,
		slurp.Scripts{Stage: cfg.StageScript, Dest: cfg.DestScript},
		slurp.Options{Verify: cfg.Verify, CompleteDir: cfg.CompleteDir, ErrorDir: cfg.ErrorDir},
	)

	res, err := svc.Slurp(ctx, slurp.Request{Source: *src, RunID: runID, RemoveSource: *remove})
	if err != nil {
		slog.Error("slurp failed", "source", *src, "run_id", runID, "error", err)
		os.Exit(exitCodeFor(err))
	}

	slog.Info("slurp finished", "destination", res.Destination, "key", res.Key)
}

func exitCodeFor(err error) int {
	var (
		schemeErr *stage.SchemeError
		pathErr   *stage.PathError
		scriptErr *script.ScriptError
	)
	switch {
	case errors.As(err, &schemeErr):
		return exitcode.InvalidScheme
	case errors.As(err, &pathErr):
		return exitcode.PathNotFound
	case errors.As(err, &scriptErr),
		errors.Is(err, model.ErrNoScheme),
		errors.Is(err, storage.ErrEmptyKey):
		return exitcode.ScriptError
	case errors.Is(err, slurp.ErrStore):
		return exitcode.StorageError
	default:
		return exitcode.InputError
	}
}
