package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/lamina-run/lamina/internal/api"
	"github.com/lamina-run/lamina/internal/config"
	"github.com/lamina-run/lamina/internal/runtime"
	"github.com/lamina-run/lamina/internal/script"
	"github.com/lamina-run/lamina/internal/script/procengine"
	"github.com/lamina-run/lamina/internal/store"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("lamina: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"script_root", cfg.ScriptRoot,
		"default_script", cfg.DefaultScript,
	)

	db, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	engine := procengine.New(procengine.Options{
		Interpreter: cfg.Interpreter,
		ConfigFile:  cfg.RuntimeConfig,
		Debug:       cfg.Debug,
	}, logger)

	registry := script.NewRegistry()
	registry.Register(filepath.Ext(cfg.DefaultScript), engine)

	cache := script.NewCache(registry, logger)
	defer cache.Close()

	runner := runtime.NewRunner(cache, cfg.ScriptRoot, cfg.DefaultScript, logger)

	srv := api.NewServer(cfg.ListenAddr, runner, db, logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
