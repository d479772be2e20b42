package config

import (
	"os"
	"path/filepath"
	"sync"

	"gift-ledger/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// ConfigureLogging builds the application logger from the loaded config.
func ConfigureLogging(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. Variables already set win.
func LoadEnv(logger logging.Logger) {
	envOnce.Do(func() {
		if logger == nil {
			logger = logging.NewDiscardLogger()
		}
		envFile := findEnvFile()
		if envFile == "" {
			logger.Debug("No .env file found, using environment variables")
			return
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file",
				logging.F(logging.FieldFile, envFile))
			return
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
	})
}

func findEnvFile() string {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
