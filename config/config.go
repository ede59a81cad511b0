package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"go-bloom-dict/bloom"
	"go-bloom-dict/corpus"
)

type Config struct {
	// DesiredFalsePositiveRate of 0 means not configured; the CLI prompts for it.
	DesiredFalsePositiveRate float64 `yaml:"desired_fp_rate"`

	Corpus struct {
		Path     string `yaml:"path"`
		Encoding string `yaml:"encoding"`
	} `yaml:"corpus"`

	Hash       string `yaml:"hash"`
	Workers    int    `yaml:"workers"`
	LogLevel   string `yaml:"log_level"`
	OutputPath string `yaml:"output_path"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Corpus.Path = "./dictionary.txt"
	cfg.Corpus.Encoding = "iso-8859-1"
	cfg.Hash = bloom.HashMurmur3
	cfg.Workers = 1
	cfg.LogLevel = "info"
	return cfg
}

// Load overlays the YAML file at path on the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks everything except an unset rate.
func (cfg *Config) Validate() error {
	if cfg.DesiredFalsePositiveRate != 0 {
		if _, err := bloom.ComputeParameters(cfg.DesiredFalsePositiveRate); err != nil {
			return err
		}
	}
	if cfg.Corpus.Path == "" {
		return errors.New("corpus path is required")
	}
	if err := corpus.CheckEncoding(cfg.Corpus.Encoding); err != nil {
		return err
	}
	if _, err := bloom.HashFuncByName(cfg.Hash); err != nil {
		return err
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func (cfg *Config) FilterOptions(logger logrus.FieldLogger) (bloom.Options, error) {
	hash, err := bloom.HashFuncByName(cfg.Hash)
	if err != nil {
		return bloom.Options{}, err
	}
	return bloom.Options{
		Hash:    hash,
		Workers: cfg.Workers,
		Logger:  logger,
	}, nil
}
