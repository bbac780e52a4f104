// internal/common/config/config.go
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Identity   IdentityConfig   `mapstructure:"identity"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Validation ValidationConfig `mapstructure:"validation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	MaxBodyBytes    int64  `mapstructure:"max_body_bytes"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Address, strconv.Itoa(s.Port))
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Millisecond
}

func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Millisecond
}

func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Millisecond
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	// MigrationsPath overrides the embedded migrations with a directory on disk.
	MigrationsPath string `mapstructure:"migrations_path"`
}

type PostgresConfig struct {
	URL            string `mapstructure:"url"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string. A URL wins over the discrete fields.
func (p PostgresConfig) GetDSN() string {
	if p.URL != "" {
		return p.URL
	}
	if p.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type IdentityConfig struct {
	ServiceDomain string `mapstructure:"service_domain"`
	Timeout       int    `mapstructure:"timeout"` // milliseconds
}

func (i IdentityConfig) TimeoutDuration() time.Duration {
	return time.Duration(i.Timeout) * time.Millisecond
}

type CORSConfig struct {
	// Clients are the allowed origins, each with its scheme.
	Clients []string `mapstructure:"clients"`
}

type ValidationConfig struct {
	PhoneRegion          string `mapstructure:"phone_region"`
	NameMaxLength        int    `mapstructure:"name_max_length"`
	DescriptionMaxLength int    `mapstructure:"description_max_length"`
	AddressMaxLength     int    `mapstructure:"address_max_length"`
	KeywordMaxLength     int    `mapstructure:"keyword_max_length"`
	IngredientMaxLength  int    `mapstructure:"ingredient_max_length"`
	SubdomainMaxLength   int    `mapstructure:"subdomain_max_length"`
	EmailNameMaxLength   int    `mapstructure:"email_name_max_length"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
