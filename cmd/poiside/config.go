package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gomaptools/poiside"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Tiles  TilesConfig  `yaml:"tiles" mapstructure:"tiles"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the input link network and POI extracts.
type DataConfig struct {
	LinksDir    string `yaml:"links_dir" mapstructure:"links_dir"`
	LinksFormat string `yaml:"links_format" mapstructure:"links_format"`
	POIsDir     string `yaml:"pois_dir" mapstructure:"pois_dir"`
}

// EngineConfig configures placement and violation detection.
type EngineConfig struct {
	OffsetDistance float64 `yaml:"offset_distance" mapstructure:"offset_distance"`
	BufferDistance float64 `yaml:"buffer_distance" mapstructure:"buffer_distance"`
	Workers        int     `yaml:"workers" mapstructure:"workers"`
}

// TilesConfig configures the satellite snapshot download.
type TilesConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Zoom   int    `yaml:"zoom" mapstructure:"zoom"`
	Size   int    `yaml:"size" mapstructure:"size"`
	Limit  int    `yaml:"limit" mapstructure:"limit"`
	OutDir string `yaml:"out_dir" mapstructure:"out_dir"`
}

// OutputConfig configures where result tables are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// loadConfig reads configuration from file and environment.
func loadConfig() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("POISIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.links_dir", "./data/links")
	v.SetDefault("data.links_format", "geojson")
	v.SetDefault("data.pois_dir", "./data/pois")
	v.SetDefault("engine.offset_distance", poiside.DefaultOffsetDistance)
	v.SetDefault("engine.buffer_distance", poiside.DefaultBufferDistance)
	v.SetDefault("engine.workers", 4)
	v.SetDefault("tiles.zoom", poiside.DefaultTileZoom)
	v.SetDefault("tiles.size", poiside.DefaultTileSize)
	v.SetDefault("tiles.limit", 50)
	v.SetDefault("tiles.out_dir", "./tiles")
	v.SetDefault("output.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// initLogger initializes the global zap logger.
func initLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return errors.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
