// Package config provides functionality for managing configuration options
// for the binaries using command-line flags, environment variables and an
// optional JSON file.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultAddr     = "localhost:8080"
	defaultTokenTTL = 30 * 24 * time.Hour
)

// Server holds the configuration of the reference story server.
type Server struct {
	// Addr is the listening address (ip:port).
	Addr string `env:"SERVER_ADDRESS"`

	// DatabaseDSN selects Postgres storage when set. Memory storage otherwise.
	DatabaseDSN string `env:"DATABASE_DSN"`

	// TokenSecret signs login tokens.
	TokenSecret string `env:"TOKEN_SECRET"`

	// TokenTTL is how long a login token stays valid.
	TokenTTL time.Duration `env:"TOKEN_TTL"`

	// EnablePprof indicates whether to enable pprof for performance profiling.
	EnablePprof bool `env:"ENABLE_PPROF"`

	// EnableHTTPS indicates whether to enable https.
	EnableHTTPS bool `env:"ENABLE_HTTPS"`

	LogLevel string `env:"LOG_LEVEL"`

	// Config is the path of the JSON file read before flags and env.
	Config string `env:"CONFIG"`
}

// serverFile is the JSON shape of the config file.
type serverFile struct {
	Addr        *string `json:"server_address"`
	DatabaseDSN *string `json:"database_dsn"`
	TokenSecret *string `json:"token_secret"`
	TokenTTL    *string `json:"token_ttl"`
	EnablePprof *bool   `json:"enable_pprof"`
	EnableHTTPS *bool   `json:"enable_https"`
	LogLevel    *string `json:"log_level"`
}

func defaultServer() *Server {
	return &Server{
		Addr:     defaultAddr,
		TokenTTL: defaultTokenTTL,
		LogLevel: "info",
	}
}

func bindServerFlags(fs *flag.FlagSet, cfg *Server) {
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "run on ip:port server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "db address")
	fs.StringVar(&cfg.TokenSecret, "k", cfg.TokenSecret, "token signing secret")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "token lifetime")
	fs.BoolVar(&cfg.EnablePprof, "p", cfg.EnablePprof, "enable pprof")
	fs.BoolVar(&cfg.EnableHTTPS, "s", cfg.EnableHTTPS, "enable https")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Config, "c", cfg.Config, "path to JSON config file")
}

// ParseServer builds the server configuration from args (without the program
// name). Later sources win: defaults, the config file, flags, environment.
func ParseServer(args []string) (*Server, error) {
	// first pass only finds the config file
	probe := defaultServer()
	fs := flag.NewFlagSet("snoozed", flag.ContinueOnError)
	bindServerFlags(fs, probe)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	path := probe.Config
	if p := os.Getenv("CONFIG"); p != "" {
		path = p
	}

	cfg := defaultServer()
	cfg.Config = path
	if path != "" {
		if err := loadServerFile(path, cfg); err != nil {
			return nil, err
		}
	}

	fs = flag.NewFlagSet("snoozed", flag.ContinueOnError)
	bindServerFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("token secret is required (-k or TOKEN_SECRET)")
	}

	return cfg, nil
}

func loadServerFile(path string, cfg *Server) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var f serverFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if f.Addr != nil {
		cfg.Addr = *f.Addr
	}
	if f.DatabaseDSN != nil {
		cfg.DatabaseDSN = *f.DatabaseDSN
	}
	if f.TokenSecret != nil {
		cfg.TokenSecret = *f.TokenSecret
	}
	if f.TokenTTL != nil {
		ttl, err := time.ParseDuration(*f.TokenTTL)
		if err != nil {
			return fmt.Errorf("parse config %s: token_ttl: %w", path, err)
		}
		cfg.TokenTTL = ttl
	}
	if f.EnablePprof != nil {
		cfg.EnablePprof = *f.EnablePprof
	}
	if f.EnableHTTPS != nil {
		cfg.EnableHTTPS = *f.EnableHTTPS
	}
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}

	return nil
}
