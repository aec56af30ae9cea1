package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// DefaultLimit is the page size used when a search does not specify one.
const DefaultLimit = 30

type Config struct {
	// DBPath is the location of the SQLite database holding the blog
	// dataset. Defaults to <data dir>/blogdex/blogdex.db.
	DBPath string `toml:"db_path"`

	// ListenAddr is the address the HTTP API binds to when serving.
	ListenAddr string `toml:"listen_addr"`

	// DefaultLimit is the page size applied when a search request does
	// not specify one.
	DefaultLimit int `toml:"default_limit"`

	// Debug enables debug logging for all components.
	Debug bool `toml:"debug"`
}

func GetDefaultConfig() (*Config, error) {
	dbPath, err := GetDefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("getting default database path: %w", err)
	}
	return &Config{
		DBPath:       dbPath,
		ListenAddr:   ":8080",
		DefaultLimit: DefaultLimit,
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.DBPath == "" {
		dbPath, err := GetDefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("getting default database path: %w", err)
		}
		config.DBPath = dbPath
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}

	if config.DefaultLimit <= 0 {
		config.DefaultLimit = DefaultLimit
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template, err := c.generateConfigTemplate()
	if err != nil {
		return fmt.Errorf("generating config template: %w", err)
	}
	return os.WriteFile(configPath, []byte(template), 0644)
}

func (c *Config) generateConfigTemplate() (string, error) {
	dbPath := c.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDBPath()
		if err != nil {
			return "", fmt.Errorf("getting default database path: %w", err)
		}
	}

	// Replace the placeholder db_path with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/blogdex/blogdex.db", dbPath, 1)
	return template, nil
}

// GetDefaultStorageDir returns the default storage directory for the database
func GetDefaultStorageDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	storageDir := filepath.Join(dataDir, "blogdex")

	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", storageDir, err)
	}

	return storageDir, nil
}

// GetDefaultDBPath returns the default database path in the user's data directory
func GetDefaultDBPath() (string, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(storageDir, "blogdex.db"), nil
}

// GetConfigDir returns the configuration directory for blogdex
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	blogdexConfigDir := filepath.Join(configDir, "blogdex")

	if err := os.MkdirAll(blogdexConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", blogdexConfigDir, err)
	}

	return blogdexConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
