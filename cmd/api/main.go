package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/krysmro/todo-service/internal/auth"
	"github.com/krysmro/todo-service/internal/router"
	"github.com/krysmro/todo-service/pkg/database"
	"github.com/krysmro/todo-service/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// best-effort: if no .env exists, continue with the real environment
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting todo-service")

	// auth config is required; a missing signing key must never surface
	// per-request
	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("auth config: %v", err)
	}
	tokens, err := auth.NewTokenService(authCfg)
	if err != nil {
		sugar.Fatalf("token service: %v", err)
	}

	// init db
	dbCfg, err := database.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("db config: %v", err)
	}
	sqlDB, err := database.Connect(dbCfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(dbCfg.DSN); err != nil {
		sugar.Fatalf("db migrate: %v", err)
	}

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	// the static verifier is the reference behavior; the database-backed
	// one is the real thing
	var verifier auth.CredentialVerifier = auth.NewStaticVerifier()
	if os.Getenv("AUTH_CREDENTIAL_SOURCE") == "database" {
		verifier = auth.NewUserRepoVerifier(sqlxDB)
	}

	loginLimiter := router.NewLoginLimiter(rate.Limit(10.0/60.0), 10)
	defer loginLimiter.Stop()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Info("service is running; press Ctrl+C to stop")

	// mount http server
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	handler := router.RegisterRoutes(sugar, sqlxDB, tokens, verifier, loginLimiter)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// ping db once more
	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
