package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapi/internal/auth"
	"todoapi/internal/config"
	"todoapi/internal/httpapi"
	"todoapi/internal/repository"
	"todoapi/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authn := auth.NewAuthenticator(userRepo, tokens)

	accountSvc := service.NewAccountService(userRepo, tokenRepo, authn, tokens)
	todoSvc := service.NewTodoService(todoRepo)

	cleanup := service.NewCleanupService(tokenRepo, time.Local)
	if cfg.CleanupInterval > 0 {
		if _, err := cleanup.Schedule(cfg.CleanupInterval); err != nil {
			log.Fatalf("schedule token cleanup: %v", err)
		}
		cleanup.Start()
		defer cleanup.Stop()
	}

	server := httpapi.NewServer(accountSvc, todoSvc, tokens, tokenRepo)

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Todo API listening on %s", cfg.ListenAddr)
	if err := server.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
