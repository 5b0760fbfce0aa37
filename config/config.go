// Package config reads the collection settings from the environment. The
// report core never sees configuration; a bad environment is fatal before any
// collection starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr   = ":8080"
	defaultWinRMPort    = 5985
	defaultWinRMTimeout = 60 * time.Second
)

type Config struct {
	Username string
	Password string
	Domain   string
	Servers  []string

	ListenAddr   string
	WinRMPort    int
	WinRMTimeout time.Duration
}

// Load reads configuration from the environment, typically populated from a
// .env file by the caller via godotenv.
func Load() (*Config, error) {
	cfg := &Config{
		Username:     os.Getenv("RDP_LOG_USERNAME"),
		Password:     os.Getenv("RDP_LOG_PASSWORD"),
		Domain:       os.Getenv("RDP_LOG_DOMAIN"),
		ListenAddr:   defaultListenAddr,
		WinRMPort:    defaultWinRMPort,
		WinRMTimeout: defaultWinRMTimeout,
	}

	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("RDP_LOG_USERNAME and RDP_LOG_PASSWORD must be set")
	}

	for _, server := range strings.Split(os.Getenv("RDP_SERVERS"), ",") {
		if server = strings.TrimSpace(server); server != "" {
			cfg.Servers = append(cfg.Servers, server)
		}
	}
	if len(cfg.Servers) == 0 {
		return nil, errors.New("RDP_SERVERS must list at least one server")
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if portStr := os.Getenv("WINRM_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid WINRM_PORT %q: %w", portStr, err)
		}
		cfg.WinRMPort = port
	}
	if timeoutStr := os.Getenv("WINRM_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid WINRM_TIMEOUT %q: %w", timeoutStr, err)
		}
		cfg.WinRMTimeout = timeout
	}

	return cfg, nil
}

// User returns the account in DOMAIN\username form when a domain is
// configured, matching what the NTLM transport expects.
func (c *Config) User() string {
	if c.Domain != "" {
		return c.Domain + `\` + c.Username
	}
	return c.Username
}
