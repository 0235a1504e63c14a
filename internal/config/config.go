// Package config provides configuration loading for the fugaji CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
)

// Configuration keys.
const (
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyDatabasePath   = "database.path"
	KeyOutputFormat   = "output.format"
	KeyBatchWorkers   = "batch.workers"
	KeyHistoryEnabled = "history.enabled"
)

// DefaultDatabasePath is used when database.path is unset.
const DefaultDatabasePath = "$HOME/.local/share/fugaji/fugaji.db"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Settings is the resolved CLI configuration.
type Settings struct {
	LogLevel       string
	LogFormat      string
	DatabasePath   string
	OutputFormat   string
	BatchWorkers   int
	HistoryEnabled bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyOutputFormat, FormatText)
	v.SetDefault(KeyBatchWorkers, 4)
	v.SetDefault(KeyHistoryEnabled, true)
}

// Load reads and validates settings from v.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		DatabasePath:   v.GetString(KeyDatabasePath),
		OutputFormat:   strings.ToLower(v.GetString(KeyOutputFormat)),
		BatchWorkers:   v.GetInt(KeyBatchWorkers),
		HistoryEnabled: v.GetBool(KeyHistoryEnabled),
	}

	if s.DatabasePath == "" {
		s.DatabasePath = DefaultDatabasePath
	}
	s.DatabasePath = ExpandPath(s.DatabasePath)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that enumerated settings hold known values.
func (s *Settings) Validate() error {
	switch s.OutputFormat {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: output format %q (use text, json or yaml)", common.ErrInvalidConfig, s.OutputFormat)
	}
	if s.BatchWorkers < 1 {
		return fmt.Errorf("%w: batch workers must be at least 1, got %d", common.ErrInvalidConfig, s.BatchWorkers)
	}
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
