package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/stackadvisor/internal/advisor"
	"github.com/dgallion1/stackadvisor/internal/api"
	"github.com/dgallion1/stackadvisor/internal/config"
	"github.com/dgallion1/stackadvisor/internal/parser"
	"github.com/dgallion1/stackadvisor/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// A missing flow document is fatal: without it there is no tree.
	f, err := os.Open(cfg.FlowPath)
	if err != nil {
		log.Error("flow document not found", "path", cfg.FlowPath, "error", err)
		os.Exit(1)
	}
	p, err := parser.ForFile(cfg.FlowPath)
	if err != nil {
		f.Close()
		log.Error("unsupported flow document", "path", cfg.FlowPath, "error", err)
		os.Exit(1)
	}
	tree, err := p.Parse(f, cfg.FlowPath)
	f.Close()
	if err != nil {
		log.Error("failed to read flow document", "path", cfg.FlowPath, "error", err)
		os.Exit(1)
	}
	log.Info("flow document loaded", "path", cfg.FlowPath, "phases", len(tree.Phases()))

	rules := advisor.DefaultRules()
	if cfg.RulesPath != "" {
		rules, err = advisor.LoadRules(cfg.RulesPath)
		if err != nil {
			log.Error("failed to load enrichment rules", "path", cfg.RulesPath, "error", err)
			os.Exit(1)
		}
		log.Info("enrichment rules loaded", "path", cfg.RulesPath, "rules", len(rules))
	}
	engine := advisor.NewEngine(tree, rules)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open session store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	srv := api.NewServer(tree, engine, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		st.Close()
	}()

	log.Info("starting stackadvisor", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
