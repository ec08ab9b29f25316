package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "PROMPTVAULT_SERVER_HOST"
	EnvServerPort              = "PROMPTVAULT_SERVER_PORT"
	EnvServerReadTimeout       = "PROMPTVAULT_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "PROMPTVAULT_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "PROMPTVAULT_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "PROMPTVAULT_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout   = "PROMPTVAULT_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP listener parameters. Durations are kept as
// strings so they read naturally in TOML and env ("30s", "2m").
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// ServerTimeouts is the parsed form of the ServerConfig durations.
type ServerTimeouts struct {
	Read       time.Duration
	ReadHeader time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Timeouts parses every duration field. Unparseable values yield zero,
// which validate rejects during Finalize.
func (c *ServerConfig) Timeouts() ServerTimeouts {
	var t ServerTimeouts
	for _, f := range c.durations(&t) {
		*f.dst, _ = time.ParseDuration(*f.src)
	}
	return t
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}

	var mine, theirs ServerTimeouts
	dst := c.durations(&mine)
	for i, f := range overlay.durations(&theirs) {
		if *f.src != "" {
			*dst[i].src = *f.src
		}
	}
}

type durationField struct {
	name     string
	env      string
	fallback string
	src      *string
	dst      *time.Duration
}

func (c *ServerConfig) durations(t *ServerTimeouts) []durationField {
	return []durationField{
		{"read_timeout", EnvServerReadTimeout, "30s", &c.ReadTimeout, &t.Read},
		{"read_header_timeout", EnvServerReadHeaderTimeout, "10s", &c.ReadHeaderTimeout, &t.ReadHeader},
		{"write_timeout", EnvServerWriteTimeout, "2m", &c.WriteTimeout, &t.Write},
		{"idle_timeout", EnvServerIdleTimeout, "2m", &c.IdleTimeout, &t.Idle},
		{"shutdown_timeout", EnvServerShutdownTimeout, "30s", &c.ShutdownTimeout, &t.Shutdown},
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 5000
	}

	var t ServerTimeouts
	for _, f := range c.durations(&t) {
		if *f.src == "" {
			*f.src = f.fallback
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}

	var t ServerTimeouts
	for _, f := range c.durations(&t) {
		if v := os.Getenv(f.env); v != "" {
			*f.src = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	var t ServerTimeouts
	for _, f := range c.durations(&t) {
		d, err := time.ParseDuration(*f.src)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", f.name)
		}
	}
	return nil
}
