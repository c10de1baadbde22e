// Package config loads Photoshelf configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// AnalysisConfig configures the external vision analysis call.
type AnalysisConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	// Local switches analysis to the on-device vision backend, which needs
	// no API key.
	Local bool
}

// ImagingConfig bounds the payload sent to the analysis collaborator.
type ImagingConfig struct {
	MaxSide int
	Quality int
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	Environment string
	Analysis    AnalysisConfig
	Imaging     ImagingConfig
}

// Analyzable reports whether an analysis backend can be offered at all.
// A missing credential hides the feature instead of erroring per use.
func (c *AppConfig) Analyzable() bool {
	return c.Analysis.Local || c.Analysis.APIKey != ""
}

// Load reads configuration from config.yaml (if present) and the
// PHOTOSHELF_* environment.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PHOTOSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	// The empty default keeps the key visible to AutomaticEnv.
	v.SetDefault("analysis.apikey", "")
	v.SetDefault("analysis.model", "gemini-2.5-flash")
	v.SetDefault("analysis.timeout", "2m")
	v.SetDefault("analysis.local", false)

	v.SetDefault("imaging.maxside", 1024)
	v.SetDefault("imaging.quality", 80)
}
