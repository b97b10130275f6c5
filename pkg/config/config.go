package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultFileName is looked up in the home directory when no config file is given
	DefaultFileName = ".rds-restore.yaml"
	// EnvPrefix prefixes the environment variables that override config keys
	EnvPrefix = "RDS_RESTORE"
)

// Config holds the application configuration
type Config struct {
	AWS AWSConfig `mapstructure:"aws"`
	Web WebConfig `mapstructure:"web"`
	Log LogConfig `mapstructure:"log"`
}

// AWSConfig holds AWS-specific configuration. Empty keys leave credentials to the SDK's
// default chain.
type AWSConfig struct {
	Region    string `mapstructure:"region"`
	Profile   string `mapstructure:"profile"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
}

// WebConfig holds the browser form settings
type WebConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig holds the diagnostic logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// LoadConfig loads configuration from path, the environment and defaults.
// An empty path reads ~/.rds-restore.yaml if it exists.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.access_key", "")
	v.SetDefault("aws.secret_key", "")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("web.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the AWS conventional variables apply when the prefixed ones are unset
	bindings := map[string]string{
		"aws.region":     "AWS_REGION",
		"aws.profile":    "AWS_PROFILE",
		"aws.access_key": "AWS_ACCESS_KEY_ID",
		"aws.secret_key": "AWS_SECRET_ACCESS_KEY",
		"aws.endpoint":   "AWS_ENDPOINT_URL",
	}
	for key, env := range bindings {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path == "" {
		path = defaultPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values that cannot be used as given
func (c *Config) Validate() error {
	if (c.AWS.AccessKey == "") != (c.AWS.SecretKey == "") {
		return errors.New("AWS access key and secret key must be set together")
	}
	if c.AWS.Region == "" {
		return errors.New("AWS region is required")
	}
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d: must be between 1 and 65535", c.Web.Port)
	}
	return nil
}

// defaultPath returns the config file in the home directory
func defaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(homeDir, DefaultFileName)
}
