package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/attendsync/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 55)
				convey.So(cfg.DurationThreshold, convey.ShouldEqual, 10)
				convey.So(cfg.SourceNameColumn, convey.ShouldEqual, "Name (original name)")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ATTENDSYNC_MATCH_THRESHOLD", "70.5")
			_ = os.Setenv("ATTENDSYNC_DURATION_THRESHOLD", "15")
			_ = os.Setenv("ATTENDSYNC_WORKER_COUNT", "4")
			_ = os.Setenv("ATTENDSYNC_SCORER", "ratio")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 70.5)
				convey.So(cfg.DurationThreshold, convey.ShouldEqual, 15)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.Scorer, convey.ShouldEqual, "ratio")
			})
		})

		convey.Convey("When loading config with a YAML file named by ATTENDSYNC_CONFIG", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
match_threshold: 60
skip_rows: 0
source_file: "export.csv"
status_column: "Status"
`)
			_ = os.Setenv("ATTENDSYNC_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then file values are merged over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 60)
				convey.So(cfg.SkipRows, convey.ShouldEqual, 0)
				convey.So(cfg.SourceFile, convey.ShouldEqual, "export.csv")
				convey.So(cfg.StatusColumn, convey.ShouldEqual, "Status")
				convey.So(cfg.DurationThreshold, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
match_threshold: 60
worker_count: 2
`)
			_ = os.Setenv("ATTENDSYNC_WORKER_COUNT", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, tmpFile)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 60)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars()
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)

			cfg, err := config.Load(ctx, tmpFile)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a threshold is out of range", func() {
			_ = os.Setenv("ATTENDSYNC_MATCH_THRESHOLD", "150")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "match_threshold")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ATTENDSYNC_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attendsync.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"ATTENDSYNC_CONFIG",
		"ATTENDSYNC_ADDR",
		"ATTENDSYNC_MATCH_THRESHOLD",
		"ATTENDSYNC_DURATION_THRESHOLD",
		"ATTENDSYNC_WORKER_COUNT",
		"ATTENDSYNC_SCORER",
		"ATTENDSYNC_SKIP_ROWS",
	} {
		_ = os.Unsetenv(key)
	}
}
