package config

import (
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

// InitLogger builds the console logger shared by a service binary.
func InitLogger(cfg *Config) arbor.ILogger {
	level := "info"
	if cfg != nil && strings.TrimSpace(cfg.Logging.Level) != "" {
		level = cfg.Logging.Level
	}

	return arbor.NewLogger().
		WithConsoleWriter(models.WriterConfiguration{
			Type:             models.LogWriterTypeConsole,
			TimeFormat:       "15:04:05",
			DisableTimestamp: false,
		}).
		WithLevelFromString(level)
}
