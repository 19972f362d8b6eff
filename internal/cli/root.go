// Package cli holds the cobra commands of the rewards backend.
package cli

import (
	"fmt"

	"github.com/Tapee2025/TCITapeecement2025-sub000/config"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Cement loyalty rewards backend",
	Long: `Loyalty points service for cement buyers. Purchases are claimed against a
dealer, confirmed by that dealer, then approved by an admin before points are
credited. Points are redeemed against a reward catalog.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the command named on the command line, defaulting to serve.
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads configuration, starts logging and opens the database.
// Redis is connected only when withRedis is set.
func bootstrap(withRedis bool) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	services.InitLedgerSecret(cfg)

	if _, err := database.Connect(cfg); err != nil {
		return nil, err
	}
	logger.Log.Info("database connected", zap.String("driver", cfg.DBDriver))

	if withRedis {
		if err := database.ConnectRedis(cfg); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Log.Info("redis connected", zap.String("addr", cfg.RedisFullAddr()))
	}
	return cfg, nil
}
