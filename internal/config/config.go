// Package config provides types for handling configuration parameters.
package config

import (
	"flag"

	"github.com/caarlos0/env/v6"
)

// Config handles server-related constants and parameters.
type Config struct {
	ServerConfig  *ServerConfig
	StorageConfig *StorageConfig
	SecretConfig  *SecretConfig
	MailConfig    *MailConfig
}

// ServerConfig defines default server-related constants and parameters and overwrites them with environment variables.
type ServerConfig struct {
	ServerAddress string `env:"SERVER_ADDRESS"`
	BaseURL       string `env:"BASE_URL"`
}

// StorageConfig retrieves storage-related parameters from environment.
type StorageConfig struct {
	FileStoragePath string `env:"FILE_STORAGE_PATH" envDefault:"storage/infile/kv_storage.json"`
	DatabaseDSN     string `env:"DATABASE_DSN"`
}

// SecretConfig retrieves a secret user key from environment.
type SecretConfig struct {
	UserKey string `env:"USER_KEY" envDefault:"jds__63h3_7ds"`
	AuthKey string `env:"AUTH_KEY" envDefault:"user"`
}

// MailConfig retrieves inbound email processing parameters from environment.
type MailConfig struct {
	ServiceDomain string `env:"SERVICE_DOMAIN" envDefault:"mail.letterfeed.local"`
	WebhookToken  string `env:"WEBHOOK_TOKEN"`
	FeedPageSize  int    `env:"FEED_PAGE_SIZE" envDefault:"50"`
}

// NewServerConfig sets up a server configuration.
func NewServerConfig() (*ServerConfig, error) {
	cfg := ServerConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewStorageConfig sets up a storage configuration.
func NewStorageConfig() (*StorageConfig, error) {
	cfg := StorageConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewSecretConfig sets up a secret configuration.
func NewSecretConfig() (*SecretConfig, error) {
	cfg := SecretConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewMailConfig sets up an inbound email processing configuration.
func NewMailConfig() (*MailConfig, error) {
	cfg := MailConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewDefaultConfiguration sets up a total configuration.
func NewDefaultConfiguration() (*Config, error) {
	serverCfg, err := NewServerConfig()
	if err != nil {
		return nil, err
	}
	storageCfg, err := NewStorageConfig()
	if err != nil {
		return nil, err
	}
	secretCfg, err := NewSecretConfig()
	if err != nil {
		return nil, err
	}
	mailCfg, err := NewMailConfig()
	if err != nil {
		return nil, err
	}
	return &Config{
		ServerConfig:  serverCfg,
		StorageConfig: storageCfg,
		SecretConfig:  secretCfg,
		MailConfig:    mailCfg,
	}, nil
}

// ParseFlags parses command line arguments and stores them
func (c *Config) ParseFlags() {
	flag.StringVar(&c.ServerConfig.ServerAddress, "a", ":8080", "Server address")
	flag.StringVar(&c.ServerConfig.BaseURL, "b", "http://localhost:8080", "Base url")
	flag.StringVar(&c.StorageConfig.FileStoragePath, "f", "storage/infile/kv_storage.json", "File storage path")
	flag.StringVar(&c.StorageConfig.DatabaseDSN, "d", "", "PSQL DB connection DSN")
	flag.StringVar(&c.MailConfig.ServiceDomain, "m", "mail.letterfeed.local", "Inbound email service domain")
	flag.StringVar(&c.MailConfig.WebhookToken, "t", "", "Inbound webhook verification token")
	flag.Parse()
}
