package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"

	"github.com/jrsteele09/go-forum-connect/connect/nonces"
	"github.com/jrsteele09/go-forum-connect/internal/config"
	"github.com/jrsteele09/go-forum-connect/server"
	"github.com/jrsteele09/go-forum-connect/users/oidcsession"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		// Fail closed: no traffic is served with broken configuration.
		return fmt.Errorf("config.New: %w", err)
	}
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessions, err := oidcsession.New(ctx, oidcsession.Config{
		Issuer:        c.GetOidcIssuer(),
		ClientID:      c.GetOidcClientID(),
		ClientSecret:  c.GetOidcClientSecret(),
		RedirectURL:   c.GetOidcRedirectURL(),
		SessionSecret: c.GetSessionSecret(),
		SecureCookies: c.GetEnv() == "PROD",
	})
	if err != nil {
		return fmt.Errorf("oidcsession.New: %w", err)
	}

	srv, err := server.New(c, server.Deps{
		Sessions: sessions,
		Login:    sessions,
		Replay:   replayRepo(c),
	})
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// replayRepo builds the optional nonce replay guard: nil when disabled,
// Redis-backed when an address is configured, otherwise a bounded
// in-process cache.
func replayRepo(c config.Config) nonces.Repo {
	ttl := c.GetReplayTTL()
	if ttl <= 0 {
		return nil
	}
	if addr := c.GetRedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: c.GetRedisPassword(),
		})
		return nonces.NewRedisRepo(client, ttl)
	}
	return nonces.NewInMemoryRepo(nonces.DefaultCapacity, ttl)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
