package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Registry RegistryConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Env          string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string
	AutoMigrate     bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// DSN returns the key/value connection string understood by lib/pq
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host + " port=" + strconv.Itoa(c.Port) + " user=" + c.User + " password=" + c.Password + " dbname=" + c.DBName + " sslmode=" + c.SSLMode
}

// IsSQLite reports whether the sqlite store is selected
func (c DatabaseConfig) IsSQLite() bool {
	return strings.EqualFold(c.Driver, "sqlite")
}

// RedisConfig holds Redis configuration. An empty URL disables idempotency keys.
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// RegistryConfig holds domain rules that vary per deployment
type RegistryConfig struct {
	EmailDomain       string
	AuditDefaultLimit int
	AuditMaxLimit     int
	TopSkillsLimit    int
	RecentActivity    int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Env:          getEnv("SERVER_ENV", "development"),
			CORSOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "skill_registry"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "skill_registry.db"),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", false),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Registry: RegistryConfig{
			EmailDomain:       getEnv("MEMBER_EMAIL_DOMAIN", "gmail.com"),
			AuditDefaultLimit: getEnvAsInt("AUDIT_DEFAULT_LIMIT", 100),
			AuditMaxLimit:     getEnvAsInt("AUDIT_MAX_LIMIT", 1000),
			TopSkillsLimit:    getEnvAsInt("REPORT_TOP_SKILLS", 10),
			RecentActivity:    getEnvAsInt("DASHBOARD_RECENT_ACTIVITY", 10),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
