package storage

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// EnvAzureConnectionString is the Azure SDK's conventional variable. It is
// consulted after the application-specific one.
const EnvAzureConnectionString = "AZURE_STORAGE_CONNECTION_STRING"

const (
	defaultContainer   = "promptvault"
	defaultMaxListSize = 50
)

var containerName = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9]|-[a-z0-9]){2,62}$`)

// Config holds Azure Blob Storage connection parameters.
// An empty ConnectionString leaves storage disabled.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	MaxListSize      int32  `toml:"max_list_size"`
}

// Env names the environment variables that override Config.
type Env struct {
	ContainerName    string
	ConnectionString string
	MaxListSize      string
}

// Enabled reports whether a storage backend is configured.
func (c *Config) Enabled() bool {
	return c.ConnectionString != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = defaultContainer
	}
	if c.MaxListSize == 0 {
		c.MaxListSize = defaultMaxListSize
	}

	if env != nil {
		c.loadEnv(env)
	}
	c.MaxListSize = min(c.MaxListSize, MaxListCap)

	if c.Enabled() && !containerName.MatchString(c.ContainerName) {
		return fmt.Errorf("invalid container_name %q: use 3-63 lowercase letters, digits and single hyphens", c.ContainerName)
	}
	if c.MaxListSize < 1 {
		return fmt.Errorf("max_list_size must be positive")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.ContainerName); v != "" {
		c.ContainerName = v
	}

	switch {
	case getenv(env.ConnectionString) != "":
		c.ConnectionString = getenv(env.ConnectionString)
	case c.ConnectionString == "":
		c.ConnectionString = os.Getenv(EnvAzureConnectionString)
	}

	if v := getenv(env.MaxListSize); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			c.MaxListSize = int32(n)
		}
	}
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
