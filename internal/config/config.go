package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DaemonPort int      `mapstructure:"daemon_port"`
	BufferSize int      `mapstructure:"buffer_size"`
	DBPath     string   `mapstructure:"db_path"`
	NameMerge  string   `mapstructure:"name_merge"`
	TokenFile  string   `mapstructure:"token_file"`
	Ignore     []string `mapstructure:"ignore"`
}

var Default = Config{
	DaemonPort: 9011,
	BufferSize: 100,
	DBPath:     "resolvo.db",
	NameMerge:  "local",
	TokenFile:  "token.json",
	Ignore:     []string{".git", "*.resolvo.tmp"},
}

// Dir returns ~/.resolvo, creating it when missing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}

	dir := filepath.Join(home, ".resolvo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	return dir, nil
}

func Load() (*Config, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetDefault("daemon_port", Default.DaemonPort)
	viper.SetDefault("buffer_size", Default.BufferSize)
	viper.SetDefault("db_path", Default.DBPath)
	viper.SetDefault("name_merge", Default.NameMerge)
	viper.SetDefault("token_file", Default.TokenFile)
	viper.SetDefault("ignore", Default.Ignore)

	viper.SetEnvPrefix("RESOLVO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// TokenPath resolves the access-token file inside the config dir.
func (c *Config) TokenPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, c.TokenFile), nil
}
