package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"yandexsmarthome/internal/api"
	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/device"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/smarthome"
	"yandexsmarthome/internal/state"
)

const defaultAPIPort = 8081

func main() {
	// Load environment variables before the logger reads LOG_LEVEL
	envErr := godotenv.Load()

	logger, err := newLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Warn("No .env file found, using environment variables")
	}

	haURL := os.Getenv("HA_URL")
	haToken := os.Getenv("HA_TOKEN")
	if haURL == "" || haToken == "" {
		logger.Fatal("HA_URL and HA_TOKEN environment variables must be set")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	apiPort := defaultAPIPort
	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			logger.Fatal("Invalid API_PORT", zap.String("value", v), zap.Error(err))
		}
		apiPort = port
	}

	logger.Info("Starting smart home adapter",
		zap.String("url", haURL),
		zap.String("config", configPath))

	cfg, err := config.NewLoader(configPath, logger).Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Create HA client
	client := ha.NewClient(haURL, haToken, logger)
	if err := client.Connect(); err != nil {
		logger.Fatal("Failed to connect to Home Assistant", zap.Error(err))
	}
	defer client.Disconnect()

	logger.Info("Connected to Home Assistant")

	store := state.NewStore(client, logger)
	if err := store.Start(); err != nil {
		logger.Fatal("Failed to sync state from HA", zap.Error(err))
	}
	defer store.Stop()

	env := &smarthome.Env{
		States:   store,
		Services: client,
		Streams:  client,
		Settings: cfg.Settings.Smarthome(),
		Logger:   logger,
	}
	assembler := device.NewAssembler(env, cfg)

	sub := store.Subscribe(func(entityID string, _, newState *ha.State) {
		if !cfg.Has(entityID) || newState == nil {
			return
		}
		logger.Debug("Configured entity changed",
			zap.String("entity_id", entityID),
			zap.String("state", newState.State))
	})
	defer sub.Unsubscribe()

	server := api.NewServer(assembler, store, logger, apiPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start HTTP API server", zap.Error(err))
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Application running. Press Ctrl+C to exit.",
		zap.Int("entities", store.Len()),
		zap.Int("configured", len(cfg.Entities)))

	<-sigChan

	logger.Info("Shutting down gracefully...")
	if err := server.Stop(); err != nil {
		logger.Error("Failed to stop HTTP API server", zap.Error(err))
	}
}

// newLogger builds a production logger at the given level, info when empty
func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zapCfg.Build()
}
