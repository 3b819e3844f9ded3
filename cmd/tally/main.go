package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ihrp/tally/internal/api"
	"github.com/ihrp/tally/internal/cli"
	"github.com/ihrp/tally/internal/config"
	"github.com/ihrp/tally/internal/db"
	"github.com/ihrp/tally/internal/logging"
)

func main() {
	cfg := config.Load()

	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: tally reset-password <email>")
			os.Exit(1)
		}
		if err := cli.RunResetPasswordCommand(cfg.DocStorePath, os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "reset-password failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, err := logging.Init(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	docStore, err := db.OpenDocStore(cfg.DocStorePath)
	if err != nil {
		sugar.Fatalf("document store init failed: %v", err)
	}

	relational, err := db.OpenRelational(cfg.RelationalDSN)
	if err != nil {
		sugar.Fatalf("relational store init failed: %v", err)
	}
	defer relational.Close()

	repos := db.NewRepositories(docStore, relational)
	handler := api.NewHandler(repos, cfg.SecretKey, cfg.CookieSecure, sugar)

	app := fiber.New(fiber.Config{
		AppName:               "Tally",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(api.RequestLogger(sugar))
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			sugar.Errorf("server shutdown failed: %v", err)
		}
	}()

	sugar.Infow("tally listening",
		"addr", "http://0.0.0.0:"+cfg.Port,
		"docStore", cfg.DocStorePath,
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		sugar.Fatalf("server exited: %v", err)
	}
}
