// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"context"
	"path/filepath"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding knowledge bases and title lists.
	DataDir string `koanf:"data_dir"`

	// Knowledge base file names, relative to DataDir unless absolute.
	NatalFile    string `koanf:"natal_file"`
	TransitFile  string `koanf:"transit_file"`
	DraconicFile string `koanf:"draconic_file"`

	// Target title lists, relative to DataDir unless absolute.
	TropicalTitlesFile string `koanf:"tropical_titles_file"`
	DraconicTitlesFile string `koanf:"draconic_titles_file"`

	// RewriteWorkers bounds concurrent per-item rewrite calls.
	RewriteWorkers int `koanf:"rewrite_workers"`

	// RewriteTimeoutMS caps a single rewrite call.
	RewriteTimeoutMS int `koanf:"rewrite_timeout_ms"`

	// RewriteItems enables per-item rewriting before the narrative pass.
	RewriteItems bool `koanf:"rewrite_items"`

	// LLMProvider selects the rewriter: none or genai.
	LLMProvider string `koanf:"llm_provider"`
	LLMModel    string `koanf:"llm_model"`
	LLMAPIKey   string `koanf:"llm_api_key"`

	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// New creates a Config with defaults. The context is reserved for future use.
func New(_ context.Context) *Config {
	workers := runtime.NumCPU()
	if workers > maxDefaultWorkers {
		workers = maxDefaultWorkers
	}
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DataDir:            "data",
		NatalFile:          "natal_map.json",
		TransitFile:        "transitos.json",
		DraconicFile:       "draco.json",
		TropicalTitlesFile: "titulos_tropicales.txt",
		DraconicTitlesFile: filepath.Join("draco", "titulos_draconicos.txt"),
		RewriteWorkers:     workers,
		RewriteTimeoutMS:   60_000,
		RewriteItems:       false,
		LLMProvider:        ProviderNone,
		LLMModel:           "gemini-2.5-flash",
		CORSOrigins:        []string{"*"},
	}
}

// LLM providers.
const (
	ProviderNone  = "none"
	ProviderGenAI = "genai"
)

// maxDefaultWorkers mirrors the ten-call fan-out of the rewrite stage.
const maxDefaultWorkers = 10

// Path resolves name against DataDir unless it is absolute.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
