package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/IlikeChooros/go-minimax/pkg/bench"
	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

var (
	cfgFile = "go-minimax/config.yaml"
)

type InvalidConfig struct {
	err   string
	cause error
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

func (e *InvalidConfig) Unwrap() error {
	return e.cause
}

func invalid(err error) *InvalidConfig {
	return &InvalidConfig{err: err.Error(), cause: err}
}

type EngineConfig struct {
	Variant string `yaml:"variant"`
	Depth   int    `yaml:"depth"`
	// Parallel workers, 0 means one per CPU
	Workers int    `yaml:"workers"`
	Scoring string `yaml:"scoring"`
}

type BenchConfig struct {
	Games   uint `yaml:"games"`
	Threads uint `yaml:"threads"`
	// random, alternate or player1
	FirstMove string `yaml:"first_move"`
}

type Config struct {
	Size     int          `yaml:"size"`
	Engine   EngineConfig `yaml:"engine"`
	Bench    BenchConfig  `yaml:"bench"`
	LogLevel string       `yaml:"log_level"`
}

var DefaultConfig = Config{
	Size: 3,
	Engine: EngineConfig{
		Variant: minimax.VariantDepthLimit.String(),
		Depth:   4,
		Workers: 0,
		Scoring: minimax.ScoreFixed.String(),
	},
	Bench: BenchConfig{
		Games:     100,
		Threads:   2,
		FirstMove: "random",
	},
	LogLevel: "info",
}

// Load reads the config file from the XDG config directories, falling back
// to the defaults when there is none
func Load() (*Config, error) {
	path, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, nil
	}
	return LoadFile(path)
}

// LoadFile reads the given file on top of the defaults, a missing file is not an error
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, &InvalidConfig{err: fmt.Sprintf("%s: %v", path, err), cause: err}
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if err := ttt.ValidateSize(c.Size); err != nil {
		return invalid(err)
	}
	if c.Engine.Depth < 0 {
		return &InvalidConfig{err: fmt.Sprintf("negative depth %d", c.Engine.Depth)}
	}
	if c.Engine.Workers < 0 {
		return &InvalidConfig{err: fmt.Sprintf("negative workers %d", c.Engine.Workers)}
	}
	if _, err := minimax.ParseVariant(c.Engine.Variant); err != nil {
		return invalid(err)
	}
	if _, err := minimax.ParseScoring(c.Engine.Scoring); err != nil {
		return invalid(err)
	}
	if _, err := bench.ParseFirstMovePolicy(c.Bench.FirstMove); err != nil {
		return invalid(err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return invalid(err)
	}
	return nil
}

// EngineOptions builds the engine described by the config, call on a validated config
func (c *Config) EngineOptions() []minimax.Option {
	variant, _ := minimax.ParseVariant(c.Engine.Variant)
	scoring, _ := minimax.ParseScoring(c.Engine.Scoring)
	return append(variant.Options(c.Engine.Depth, c.Engine.Workers), minimax.WithScoring(scoring))
}

func (c *Config) FirstMovePolicy() bench.FirstMovePolicy {
	policy, _ := bench.ParseFirstMovePolicy(c.Bench.FirstMove)
	return policy
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Save writes the config to the user's XDG config directory and returns the path
func (c *Config) Save() (string, error) {
	path, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return path, c.SaveFile(path, 0o664)
}

func (c *Config) SaveFile(path string, perm fs.FileMode) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}
