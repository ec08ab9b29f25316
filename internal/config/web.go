package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// EnvCommonStylePath points at the shared stylesheet directory. Its
	// presence also marks a container deployment without a host clipboard.
	EnvCommonStylePath = "COMMON_STYLE_PATH"

	EnvWebStyleDir          = "PROMPTVAULT_WEB_STYLE_DIR"
	EnvWebSessionKey        = "PROMPTVAULT_WEB_SESSION_KEY"
	EnvWebSecureCookies     = "PROMPTVAULT_WEB_SECURE_COOKIES"
	EnvWebClipboardHeadless = "PROMPTVAULT_CLIPBOARD_HEADLESS"

	defaultStyleDir = "./common_style"
)

// WebConfig holds settings for the HTML interface.
type WebConfig struct {
	StyleDir          string `toml:"style_dir"`
	SessionKey        string `toml:"session_key"`
	SecureCookies     bool   `toml:"secure_cookies"`
	ClipboardHeadless bool   `toml:"clipboard_headless"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WebConfig) Finalize() error {
	c.loadEnv()
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites fields from overlay. Booleans apply only when set.
func (c *WebConfig) Merge(overlay *WebConfig) {
	if overlay.StyleDir != "" {
		c.StyleDir = overlay.StyleDir
	}
	if overlay.SessionKey != "" {
		c.SessionKey = overlay.SessionKey
	}
	if overlay.SecureCookies {
		c.SecureCookies = true
	}
	if overlay.ClipboardHeadless {
		c.ClipboardHeadless = true
	}
}

func (c *WebConfig) loadDefaults() {
	if c.StyleDir == "" {
		c.StyleDir = defaultStyleDir
	}
}

func (c *WebConfig) loadEnv() {
	if v := os.Getenv(EnvCommonStylePath); v != "" {
		c.StyleDir = v
		c.ClipboardHeadless = true
	}
	if v := os.Getenv(EnvWebStyleDir); v != "" {
		c.StyleDir = v
	}
	if v := os.Getenv(EnvWebSessionKey); v != "" {
		c.SessionKey = v
	}
	if v := os.Getenv(EnvWebSecureCookies); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SecureCookies = b
		}
	}
	if v := os.Getenv(EnvWebClipboardHeadless); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ClipboardHeadless = b
		}
	}
}

func (c *WebConfig) validate() error {
	if n := len(c.SessionKey); n > 0 && n < 32 {
		return fmt.Errorf("session_key must be at least 32 bytes, got %d", n)
	}
	return nil
}
