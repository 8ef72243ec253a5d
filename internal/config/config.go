// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and ATTENDSYNC_* env vars.
// - Validation failures wrap ErrInvalidConfig; load failures wrap ErrLoadConfig.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/attendsync/internal/domain/similarity"
	"github.com/okian/attendsync/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address for serve mode, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MatchThreshold is the minimum name similarity (0..100) to accept a match.
	MatchThreshold float64 `koanf:"match_threshold"`

	// DurationThreshold is the minimum accumulated minutes for Successful.
	DurationThreshold float64 `koanf:"duration_threshold"`

	// Scorer selects the similarity algorithm: token_sort or ratio.
	Scorer string `koanf:"scorer"`

	// WorkerCount bounds the goroutines resolving roster entries.
	WorkerCount int `koanf:"worker_count"`

	// RunHistory caps how many runs serve mode keeps in memory.
	RunHistory int `koanf:"run_history"`

	// SkipRows is the number of metadata lines before the export header.
	SkipRows int `koanf:"skip_rows"`

	// Input and output paths for the reconcile command.
	SourceFile    string `koanf:"source_file"`
	RosterFile    string `koanf:"roster_file"`
	OutputFile    string `koanf:"output_file"`
	UnmatchedFile string `koanf:"unmatched_file"`

	// Export column headers.
	SourceNameColumn     string `koanf:"source_name_column"`
	SourceDurationColumn string `koanf:"source_duration_column"`

	// Roster column headers.
	RosterFirstNameColumn string `koanf:"roster_first_name_column"`
	RosterLastNameColumn  string `koanf:"roster_last_name_column"`
	RosterStatusColumn    string `koanf:"roster_status_column"`
	StatusColumn          string `koanf:"status_column"`
	FullNameColumn        string `koanf:"full_name_column"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             logger.FormatText,
		Addr:                  ":9080",
		MatchThreshold:        55,
		DurationThreshold:     10,
		Scorer:                similarity.NameTokenSort,
		WorkerCount:           1,
		RunHistory:            100,
		SkipRows:              3,
		SourceFile:            "zoom_attendance.csv",
		RosterFile:            "sabacloud_roster.csv",
		OutputFile:            "updated_sabacloud_roster.csv",
		UnmatchedFile:         "unmatched_attendees.txt",
		SourceNameColumn:      "Name (original name)",
		SourceDurationColumn:  "Total duration (minutes)",
		RosterFirstNameColumn: "First Name",
		RosterLastNameColumn:  "Last Name",
		RosterStatusColumn:    "Audience Subtype",
		StatusColumn:          "Attendance Status",
		FullNameColumn:        "Full Name",
	}
}

// Validate checks value ranges. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case math.IsNaN(c.MatchThreshold) || c.MatchThreshold < 0 || c.MatchThreshold > 100:
		return fmt.Errorf("%w: match_threshold must be within [0,100], got %v", ErrInvalidConfig, c.MatchThreshold)
	case math.IsNaN(c.DurationThreshold) || math.IsInf(c.DurationThreshold, 0) || c.DurationThreshold < 0:
		return fmt.Errorf("%w: duration_threshold must be >= 0, got %v", ErrInvalidConfig, c.DurationThreshold)
	case c.SkipRows < 0:
		return fmt.Errorf("%w: skip_rows must be >= 0, got %d", ErrInvalidConfig, c.SkipRows)
	case c.WorkerCount < 0:
		return fmt.Errorf("%w: worker_count must be >= 0, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.RunHistory < 1:
		return fmt.Errorf("%w: run_history must be >= 1, got %d", ErrInvalidConfig, c.RunHistory)
	}
	if _, err := similarity.ByName(c.Scorer); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
