// Package config loads the clipfinder configuration from a yaml file with
// environment-variable overrides. Every field has a usable default, so
// running with no config file at all works.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	Server struct {
		Addr string `yaml:"addr"`
	}
	DB struct {
		Path string `yaml:"path"`
	}
	YouTube struct {
		APIKey    string   `yaml:"api_key"`
		Languages []string `yaml:"languages"`
	}
	Classifier struct {
		// Policy is "max_ratio" or "simple".
		Policy string `yaml:"policy"`
	}
	Cache struct {
		RedisAddr string `yaml:"redis_addr"`
		TTLHours  int    `yaml:"ttl_hours"`
	}
	Search struct {
		Mode         string `yaml:"mode"`
		DefaultLimit int    `yaml:"default_limit"`
	}

	Root struct {
		Server     Server     `yaml:"server"`
		DB         DB         `yaml:"db"`
		YouTube    YouTube    `yaml:"youtube"`
		Classifier Classifier `yaml:"classifier"`
		Cache      Cache   `yaml:"cache"`
		Search     Search     `yaml:"search"`
	}
)

func defaults() Root {
	return Root{
		Server:     Server{Addr: ":8121"},
		DB:         DB{Path: "file:./captions.db"},
		Classifier: Classifier{Policy: "max_ratio"},
		Cache:      Cache{TTLHours: 24},
		Search:     Search{Mode: "interactive", DefaultLimit: 50},
	}
}

// Load reads the first config file it finds, then applies env overrides.
// A missing file is not an error.
func Load() (Root, error) {
	cfg := defaults()

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "clipfinder.yaml"),
		"clipfinder.yaml",
	}
	for _, p := range guess {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		decErr := yaml.NewDecoder(f).Decode(&cfg)
		f.Close()
		if decErr != nil {
			return cfg, decErr
		}
		break
	}

	if v := os.Getenv("CLIPFINDER_DB"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}

	return cfg, nil
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}
