package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig_DefaultValues проверяет загрузку значений по умолчанию
func TestLoadConfig_DefaultValues(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Check default values
	if config.Server.Host != "0.0.0.0" {
		t.Errorf("Expected server host to be \"0.0.0.0\", got %s", config.Server.Host)
	}
	if config.Server.Port != 8080 {
		t.Errorf("Expected server port to be 8080, got %d", config.Server.Port)
	}
	if config.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected redis addr to be \"localhost:6379\", got %s", config.Redis.Addr)
	}
	if config.Logger.Level != "info" {
		t.Errorf("Expected logger level to be \"info\", got %s", config.Logger.Level)
	}
	if config.Logger.Format != "json" {
		t.Errorf("Expected logger format to be \"json\", got %s", config.Logger.Format)
	}
	if config.Environment != "dev" {
		t.Errorf("Expected environment to be \"dev\", got %s", config.Environment)
	}
	if config.RateLimiting.RequestsPerMinute != 100 {
		t.Errorf("Expected 100 requests per minute, got %d", config.RateLimiting.RequestsPerMinute)
	}
}

// TestLoadConfig_FileOverride проверяет возможность переопределения значений по умолчанию значениями из файла конфигурации
func TestLoadConfig_FileOverride(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `server:
  host: "127.0.0.1"
  port: 9090
redis:
  addr: "redis-prod:6379"
  db: 2
logger:
  level: "debug"
  format: "text"
environment: "prod"
rate_limiting:
  requests_per_minute: 10
`

	err := os.WriteFile(tempFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	config, err := LoadConfig(tempFile)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Check that file values override defaults
	if config.Server.Host != "127.0.0.1" {
		t.Errorf("Expected server host to be \"127.0.0.1\", got %s", config.Server.Host)
	}
	if config.Server.Port != 9090 {
		t.Errorf("Expected server port to be 9090, got %d", config.Server.Port)
	}
	if config.Redis.Addr != "redis-prod:6379" {
		t.Errorf("Expected redis addr to be \"redis-prod:6379\", got %s", config.Redis.Addr)
	}
	if config.Redis.DB != 2 {
		t.Errorf("Expected redis db to be 2, got %d", config.Redis.DB)
	}
	if config.Logger.Level != "debug" {
		t.Errorf("Expected logger level to be \"debug\", got %s", config.Logger.Level)
	}
	if config.Environment != "prod" {
		t.Errorf("Expected environment to be \"prod\", got %s", config.Environment)
	}
	if config.RateLimiting.RequestsPerMinute != 10 {
		t.Errorf("Expected 10 requests per minute, got %d", config.RateLimiting.RequestsPerMinute)
	}
}

// TestLoadConfig_EnvironmentOverride проверяет возможность переопределения значений переменными окружения
func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	os.Setenv("SERVER_HOST", "192.168.1.1")
	os.Setenv("SERVER_PORT", "7070")
	os.Setenv("REDIS_ADDR", "env-redis:6380")
	os.Setenv("REDIS_DB", "5")
	os.Setenv("LOGGER_LEVEL", "warn")
	os.Setenv("ENVIRONMENT", "staging")
	defer func() {
		os.Unsetenv("SERVER_HOST")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("REDIS_ADDR")
		os.Unsetenv("REDIS_DB")
		os.Unsetenv("LOGGER_LEVEL")
		os.Unsetenv("ENVIRONMENT")
	}()

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Check that environment variables override defaults
	if config.Server.Host != "192.168.1.1" {
		t.Errorf("Expected server host to be \"192.168.1.1\", got %s", config.Server.Host)
	}
	if config.Server.Port != 7070 {
		t.Errorf("Expected server port to be 7070, got %d", config.Server.Port)
	}
	if config.Redis.Addr != "env-redis:6380" {
		t.Errorf("Expected redis addr to be \"env-redis:6380\", got %s", config.Redis.Addr)
	}
	if config.Redis.DB != 5 {
		t.Errorf("Expected redis db to be 5, got %d", config.Redis.DB)
	}
	if config.Logger.Level != "warn" {
		t.Errorf("Expected logger level to be \"warn\", got %s", config.Logger.Level)
	}
	if config.Environment != "staging" {
		t.Errorf("Expected environment to be \"staging\", got %s", config.Environment)
	}
}

// TestLoadConfig_InvalidEnvironment проверяет ошибку при некорректном окружении
func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	os.Setenv("ENVIRONMENT", "production")
	defer os.Unsetenv("ENVIRONMENT")

	_, err := LoadConfig("")
	if err == nil {
		t.Fatal("Expected error for invalid environment, got nil")
	}
}

// TestLoadConfig_MissingFile проверяет ошибку при отсутствующем файле конфигурации
func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Expected error for missing config file, got nil")
	}
}
