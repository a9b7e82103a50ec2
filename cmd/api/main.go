package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaughan-dsouza/betasks/internal/auth"
	"github.com/vaughan-dsouza/betasks/internal/config"
	"github.com/vaughan-dsouza/betasks/internal/db"
	"github.com/vaughan-dsouza/betasks/internal/handlers"
	"github.com/vaughan-dsouza/betasks/internal/session"
	"github.com/vaughan-dsouza/betasks/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	ctx := context.Background()

	var (
		users store.Users
		tasks store.Tasks
	)
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer dbConn.Close()
		users, tasks = store.NewSQLUsers(dbConn), store.NewSQLTasks(dbConn)
		log.Printf("using %s store", dbConn.DriverName())
	} else {
		users, tasks = store.NewMemoryUsers(), store.NewMemoryTasks()
		log.Println("using in-memory store; data is lost on exit")
	}

	var denylist session.Denylist = session.NewMemoryDenylist()
	if cfg.RedisURL != "" {
		rd, err := session.NewRedisDenylist(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rd.Close()
		denylist = rd
	}

	sessions, err := session.NewManager(session.Options{
		Secret:       cfg.JWTSecret,
		SecureCookie: cfg.CookieSecure,
		Denylist:     denylist,
	})
	if err != nil {
		log.Fatal(err)
	}

	creds, err := auth.NewCredentials(users, cfg.BcryptCost)
	if err != nil {
		log.Fatal(err)
	}

	// seed hashes are in place before the listener binds
	if err := seed(ctx, creds, tasks, cfg.SeedPassword); err != nil {
		log.Fatalf("seed: %v", err)
	}

	h := handlers.NewHandler(creds, sessions, users, tasks)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Routes(true),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
