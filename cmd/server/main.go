/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll estimation server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and read environment config
  2. Load the rule set (built-in tables, or RULES_PATH JSON override)
  3. Initialize the SQLite history store
  4. Create the API handler and router
  5. Start the server with graceful shutdown

ENVIRONMENT:
  SERVER_PORT   HTTP port (default 8080)
  DB_PATH       SQLite path, ":memory:" for in-memory (default payroll.db)
  RULES_PATH    Optional JSON rule-set file for a different tax year
  ADVISOR_URL   Optional narrative-advice endpoint; unset disables it
  LOG_LEVEL     logrus level (default info)
  LOG_JSON      true for JSON log output

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/store/sqlite"
)

func main() {
	// load values from .env into the environment
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found")
	}

	cfg := config.FromEnv()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if cfg.LogAsJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}

	// Rule set: built-in Canadian tables unless a JSON override is given.
	rules := factory.DefaultRuleSet()
	if cfg.RulesPath != "" {
		data, err := os.ReadFile(cfg.RulesPath)
		if err != nil {
			log.WithError(err).Fatal("failed to read rules file")
		}
		rules, err = factory.ParseRuleSet(data)
		if err != nil {
			log.WithError(err).Fatal("failed to parse rules file")
		}
		log.WithField("path", cfg.RulesPath).Info("loaded rule set override")
	}
	if err := rules.Validate(); err != nil {
		log.WithError(err).Fatal("rule set failed validation")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	handler := api.NewHandler(store, rules)
	if cfg.AdvisorURL != "" {
		handler.Advisor = api.NewAdvisorClient(cfg.AdvisorURL)
		log.WithField("endpoint", cfg.AdvisorURL).Info("narrative advisor enabled")
	}

	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.ServerPort).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
