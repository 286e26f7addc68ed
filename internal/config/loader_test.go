package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/carta/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.RewriteItems, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CARTA_ADDR", ":8080")
			_ = os.Setenv("CARTA_DATA_DIR", "/srv/carta")
			_ = os.Setenv("CARTA_REWRITE_WORKERS", "4")
			_ = os.Setenv("CARTA_REWRITE_ITEMS", "true")
			_ = os.Setenv("CARTA_CORS_ORIGINS", "https://a.example, https://b.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/carta")
				convey.So(cfg.RewriteWorkers, convey.ShouldEqual, 4)
				convey.So(cfg.RewriteItems, convey.ShouldBeTrue)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
log_level: debug
natal_file: natal.json
rewrite_timeout_ms: 1500
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("CARTA_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.NatalFile, convey.ShouldEqual, "natal.json")
				convey.So(cfg.RewriteTimeoutMS, convey.ShouldEqual, 1500)
				convey.So(cfg.TransitFile, convey.ShouldEqual, "transitos.json")
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nlog_level: warn\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("CARTA_CONFIG", tmpFile)
			_ = os.Setenv("CARTA_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given invalid configuration sources", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("CARTA_CONFIG", "/nonexistent/carta.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it fails with ErrLoadConfig", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When addr is empty", func() {
			_ = os.Setenv("CARTA_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it fails validation", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When genai is selected without a key", func() {
			_ = os.Setenv("CARTA_LLM_PROVIDER", "genai")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When genai is selected with a key", func() {
			_ = os.Setenv("CARTA_LLM_PROVIDER", "genai")
			_ = os.Setenv("CARTA_LLM_API_KEY", "secret")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.LLMAPIKey, convey.ShouldEqual, "secret")
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"CARTA_CONFIG",
		"CARTA_ADDR",
		"CARTA_DATA_DIR",
		"CARTA_REWRITE_WORKERS",
		"CARTA_REWRITE_ITEMS",
		"CARTA_CORS_ORIGINS",
		"CARTA_LLM_PROVIDER",
		"CARTA_LLM_API_KEY",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "carta-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
