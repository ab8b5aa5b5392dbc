package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	Database   DatabaseConfig
	Auth       AuthConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// AuthConfig holds the token and bootstrap settings for the
// authentication core. The JWT secret is deliberately part of
// configuration rather than a process global so tests can run with
// distinct secrets.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int

	// BootstrapAdmin controls first-boot admin provisioning. When no
	// password is configured, a random one is generated and logged
	// once; supplying a real password is a deployment responsibility.
	BootstrapAdmin         bool
	BootstrapAdminUsername string
	BootstrapAdminPassword string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "userdesk"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "userdesk_db"),
		UseSSL:   getEnvBool("DB_SSL", false),
	}

	authConfig := AuthConfig{
		JWTSecret:              os.Getenv("JWT_SECRET"),
		TokenTTLHours:          getEnvInt("TOKEN_TTL_HOURS", 24),
		BootstrapAdmin:         getEnvBool("BOOTSTRAP_ADMIN", true),
		BootstrapAdminUsername: getEnv("BOOTSTRAP_ADMIN_USERNAME", "admin"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Database:   dbConfig,
		Auth:       authConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch getEnv(key, "") {
	case "1", "t", "true", "TRUE", "True":
		return true
	case "0", "f", "false", "FALSE", "False":
		return false
	default:
		return defaultValue
	}
}
