package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nandaputra/banking-be/internal/auth"
	"github.com/nandaputra/banking-be/internal/bank"
	"github.com/nandaputra/banking-be/internal/config"
	"github.com/nandaputra/banking-be/internal/server"
	"github.com/nandaputra/banking-be/internal/storage"
	"github.com/nandaputra/banking-be/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	store, err := postgres.NewAccountStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	if err := seedAdminAccount(ctx, cfg, store); err != nil {
		log.Fatalf("seed admin account: %v", err)
	}

	srv := server.New(cfg, store)

	go func() {
		log.Printf("banking backend listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// seedAdminAccount creates the default admin account when configured and not
// already present, so a fresh deployment has a login to bootstrap from.
func seedAdminAccount(ctx context.Context, cfg config.Config, store storage.AccountStore) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	_, err := store.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	accounts := bank.NewAccounts(store, auth.NewHasher(cfg.BcryptCost), 0)
	if _, err := accounts.Create(ctx, "Admin", cfg.AdminEmail, cfg.AdminPassword, 0); err != nil {
		return err
	}
	log.Printf("created default admin account %s", cfg.AdminEmail)
	return nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
