package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lawnchairsociety/dungeonkit/internal/character"
	"github.com/lawnchairsociety/dungeonkit/internal/config"
	"github.com/lawnchairsociety/dungeonkit/internal/creation"
	"github.com/lawnchairsociety/dungeonkit/internal/help"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
	"github.com/lawnchairsociety/dungeonkit/internal/prefs"
	"github.com/lawnchairsociety/dungeonkit/internal/server"
)

func main() {
	configFile := flag.String("config", "data/dungeonkit.yaml", "Path to config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	listen := flag.Bool("listen", false, "Serve creation sessions over WebSocket instead of the terminal")
	addr := flag.String("addr", "", "Listen address for -listen (default: config server.addr)")
	profile := flag.String("profile", "", "Storage profile (default: config storage.profile)")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *profile != "" {
		cfg.Storage.Profile = *profile
	}

	if path := cfg.Creation.CatalogTextPath; path != "" {
		if err := character.LoadCatalogText(path); err != nil {
			logger.Warning("Failed to load catalog text, using built-in labels", "path", path, "error", err)
		}
	}

	helpTopics := help.Default()
	if path := cfg.Creation.HelpPath; path != "" {
		if loaded, err := help.Load(path); err != nil {
			logger.Warning("Failed to load help config, using built-in help", "path", path, "error", err)
		} else {
			helpTopics = loaded
			logger.Info("Help system loaded", "path", path)
		}
	}

	managerCfg, err := cfg.Creation.ManagerConfig()
	if err != nil {
		log.Fatalf("Invalid creation config: %v", err)
	}

	store, closeStore, err := prefs.Open(cfg.Storage.PrefsConfig())
	if err != nil {
		log.Fatalf("Failed to open preference store: %v", err)
	}
	defer closeStore()
	logger.Info("Preference store ready", "driver", cfg.Storage.Driver, "profile", cfg.Storage.Profile)

	newSession := func(string) *creation.Session {
		session := creation.NewSession(creation.NewManager(managerCfg, nil), store)
		session.SetHelp(helpTopics)
		return session
	}

	if !*listen {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := newSession("terminal")
		if err := session.Run(ctx, os.Stdin, os.Stdout); err != nil {
			logger.Error("Creation session ended with error", "error", err)
		}
		if scene := session.Scene(); scene != "" {
			fmt.Println(scene)
		}
		return
	}

	srv := server.New(cfg.Server, newSession)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warning("Server did not stop cleanly", "error", err)
	}
	logger.Info("Server stopped")
}
