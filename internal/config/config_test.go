package config_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/attendsync/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry the reconciliation defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MatchThreshold, convey.ShouldEqual, 55)
			convey.So(cfg.DurationThreshold, convey.ShouldEqual, 10)
			convey.So(cfg.Scorer, convey.ShouldEqual, "token_sort")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 1)
			convey.So(cfg.SkipRows, convey.ShouldEqual, 3)
			convey.So(cfg.RunHistory, convey.ShouldEqual, 100)
			convey.So(cfg.StatusColumn, convey.ShouldEqual, "Attendance Status")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with out-of-range values", t, func() {
		cases := []struct {
			name   string
			mutate func(c *config.Config)
		}{
			{"match threshold above 100", func(c *config.Config) { c.MatchThreshold = 101 }},
			{"negative match threshold", func(c *config.Config) { c.MatchThreshold = -1 }},
			{"NaN duration threshold", func(c *config.Config) { c.DurationThreshold = math.NaN() }},
			{"negative skip rows", func(c *config.Config) { c.SkipRows = -1 }},
			{"negative worker count", func(c *config.Config) { c.WorkerCount = -2 }},
			{"zero run history", func(c *config.Config) { c.RunHistory = 0 }},
			{"unknown scorer", func(c *config.Config) { c.Scorer = "soundex" }},
			{"unknown log format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+tc.name+" is rejected with ErrInvalidConfig", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
