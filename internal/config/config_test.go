package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultConfiguration(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("SERVER_ADDRESS", "some_server_address")
	_ = os.Setenv("BASE_URL", "some_base_url")
	_ = os.Setenv("FILE_STORAGE_PATH", "some_file")
	_ = os.Setenv("DATABASE_DSN", "some_dsn")
	_ = os.Setenv("USER_KEY", "some_user_key")
	_ = os.Setenv("SERVICE_DOMAIN", "some_domain")
	_ = os.Setenv("WEBHOOK_TOKEN", "some_token")
	cfg, err := NewDefaultConfiguration()
	assert.NoError(t, err)
	assert.Equal(t, "some_server_address", cfg.ServerConfig.ServerAddress)
	assert.Equal(t, "some_base_url", cfg.ServerConfig.BaseURL)
	assert.Equal(t, "some_file", cfg.StorageConfig.FileStoragePath)
	assert.Equal(t, "some_dsn", cfg.StorageConfig.DatabaseDSN)
	assert.Equal(t, "some_user_key", cfg.SecretConfig.UserKey)
	assert.Equal(t, "some_domain", cfg.MailConfig.ServiceDomain)
	assert.Equal(t, "some_token", cfg.MailConfig.WebhookToken)
	assert.Equal(t, 50, cfg.MailConfig.FeedPageSize)
}

func TestNewDefaultConfigurationDefaults(t *testing.T) {
	os.Clearenv()
	cfg, err := NewDefaultConfiguration()
	assert.NoError(t, err)
	assert.Equal(t, "storage/infile/kv_storage.json", cfg.StorageConfig.FileStoragePath)
	assert.Equal(t, "jds__63h3_7ds", cfg.SecretConfig.UserKey)
	assert.Equal(t, "user", cfg.SecretConfig.AuthKey)
	assert.Equal(t, "mail.letterfeed.local", cfg.MailConfig.ServiceDomain)
	assert.Equal(t, "", cfg.MailConfig.WebhookToken)
	assert.Equal(t, 50, cfg.MailConfig.FeedPageSize)
}
