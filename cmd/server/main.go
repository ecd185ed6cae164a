package main

import (
	"context" // context package is needed for Redis operations
	"os"      // Log output
	"time"    // Redis ping timeout

	"tetconnect/internal/api"     // Custom package for API handlers
	"tetconnect/internal/config"  // Custom package for configuration
	"tetconnect/internal/db"      // Database connection
	"tetconnect/internal/game"    // Dice sources
	"tetconnect/internal/service" // Game services

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/redis/go-redis/v9"     // Redis client
	"github.com/sirupsen/logrus"       // Logrus for structured logging
	"gopkg.in/natefinch/lumberjack.v2" // Rotated log files
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg)

	gdb, err := db.Open(cfg) // Connect to the database selected by DB_DRIVER
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	var redisClient *redis.Client // Stays nil when caching is disabled
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_, err = redisClient.Ping(ctx).Result() // Test Redis connection
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, caching disabled")
	}

	var roller game.Roller = game.CryptoRoller{}
	if cfg.DiceSeed != "" {
		roller = game.SeededRoller{Seed: cfg.DiceSeed} // Replayable dice
		logrus.Warn("DICE_SEED set, dice outcomes are reproducible")
	}

	families := service.NewFamilyService(gdb)
	ledger := service.NewLedger(gdb, redisClient, cfg.StartingBalance)
	rounds := service.NewRoundService(gdb, redisClient, families, ledger, service.RoundOptions{
		Roller: roller,
		MaxBet: cfg.MaxBet,
	})

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(api.Deps{
		DB:        gdb,
		Redis:     redisClient,
		JWTSecret: cfg.JWTSecret,
		Families:  families,
		Rounds:    rounds,
	})
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":      cfg.AppPort,
		"db_driver": cfg.DBDriver,
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

// setupLogger applies formatter, level and optional file rotation
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.LogFile == "" {
		logrus.SetOutput(os.Stderr)
		return
	}
	logrus.SetOutput(&lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,  // megabytes
		MaxBackups: cfg.LogMaxBackups, // files
		MaxAge:     cfg.LogMaxAgeDays, // days
		Compress:   true,
	})
}
