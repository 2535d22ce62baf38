package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/powellquiring/wordlehint/solver"
	"github.com/powellquiring/wordlehint/wordbank"
)

// Config is the YAML config file. Flags and environment variables win over it.
type Config struct {
	DataDir    string   `yaml:"data_dir"`
	Seed       int64    `yaml:"seed"`
	SampleSize int      `yaml:"sample_size"`
	Openers    []string `yaml:"openers"`
	LogLevel   string   `yaml:"log_level"`
	Addr       string   `yaml:"addr"`
	// AutoFetch downloads the word lists when either is missing from DataDir
	AutoFetch  bool     `yaml:"auto_fetch"`
	AnswersURL string   `yaml:"answers_url"`
	AllowedURL string   `yaml:"allowed_url"`
}

func defaultConfig() Config {
	return Config{
		DataDir:    "data",
		SampleSize: solver.DefaultSampleSize,
		LogLevel:   "info",
		Addr:       ":5175",
		AutoFetch:  true,
	}
}

// loadConfig reads path over the defaults, an empty path is just the defaults
func loadConfig(path string) (Config, error) {
	ret := defaultConfig()
	if path == "" {
		return ret, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ret, fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &ret); err != nil {
		return ret, fmt.Errorf("config %s: %w", path, err)
	}
	if ret.SampleSize <= 0 {
		ret.SampleSize = solver.DefaultSampleSize
	}
	return ret, nil
}

func (c Config) lists() []wordbank.List {
	return wordbank.Lists(c.AnswersURL, c.AllowedURL)
}

// engineOptions turns the config into solver options
func (c Config) engineOptions() []solver.Option {
	opts := []solver.Option{solver.WithSampleSize(c.SampleSize)}
	if c.Seed != 0 {
		opts = append(opts, solver.WithSeed(c.Seed))
	}
	if len(c.Openers) > 0 {
		opts = append(opts, solver.WithOpeners(c.Openers))
	}
	return opts
}
