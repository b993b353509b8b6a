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

	"thought-diary-cli/internal/cli"
	"thought-diary-cli/internal/client"
	"thought-diary-cli/internal/config"
	"thought-diary-cli/internal/tokenstore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	tokensPath, err := cfg.Tokens.File()
	if err != nil {
		log.Error("tokens_path_failed", slog.String("err", err.Error()))
		return 1
	}

	tokens, err := tokenstore.NewFileStore(tokensPath)
	if err != nil {
		log.Error("token_store_init_failed", slog.String("err", err.Error()))
		return 1
	}

	api, err := client.New(client.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  tokens,
		Logger:  log,
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, "session expired, please login again")
		},
	})
	if err != nil {
		log.Error("client_init_failed", slog.String("err", err.Error()))
		return 1
	}

	app := &cli.App{
		Client: api,
		Out:    os.Stdout,
		In:     os.Stdin,
	}

	if err := app.Run(rootCtx, flag.Args()); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "error: %s (%s)\n", apiErr.Message, apiErr.Code)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		return 1
	}

	return 0
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		// Для интерактивной команды логи — только о проблемах.
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}
