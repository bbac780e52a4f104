// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"inventory-service/internal/validation"
)

// Load reads configs/config.yaml, merges config.<env>.yaml on top, then applies
// the environment variables the service has always honoured.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", environment()))
	_ = v.MergeInConfig()

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := overrideFromEnv(&cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func environment() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	if env := os.Getenv("APP_ENVIRONMENT"); env != "" {
		return env
	}
	return "local"
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env", "../../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideFromEnv applies the flat variable names deployments set directly.
func overrideFromEnv(cfg *Config) error {
	if val := os.Getenv("ENV"); val != "" {
		cfg.App.Environment = val
	}
	if val := os.Getenv("ADDRESS"); val != "" {
		cfg.Server.Address = val
	}
	if val := os.Getenv("PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if val := os.Getenv("IDENTITY_SERVICE_DOMAIN"); val != "" {
		cfg.Identity.ServiceDomain = val
	}
	if val := os.Getenv("MIGRATIONS_PATH"); val != "" {
		cfg.Database.MigrationsPath = val
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		cfg.Database.Postgres.URL = val
	}
	if val := os.Getenv("CLIENTS"); val != "" {
		cfg.CORS.Clients = ParseClients(val)
	}
	if val := os.Getenv("DB_USER"); val != "" && cfg.Database.Postgres.User == "" {
		cfg.Database.Postgres.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" && cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = val
	}
	return nil
}

// ParseClients splits a comma separated list of client hosts into origins.
// Entries without a scheme get http://.
func ParseClients(raw string) []string {
	var clients []string
	for _, c := range strings.Split(raw, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !strings.HasPrefix(c, "http://") && !strings.HasPrefix(c, "https://") {
			c = "http://" + c
		}
		clients = append(clients, c)
	}
	return clients
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "inventory-service"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = environment()
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 10000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15000
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}

	// Database defaults
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Identity.Timeout == 0 {
		cfg.Identity.Timeout = 5000
	}

	// Validation defaults
	defaults := validation.DefaultConfig()
	if cfg.Validation.PhoneRegion == "" {
		cfg.Validation.PhoneRegion = defaults.PhoneRegion
	}
	setDefaultInt(&cfg.Validation.NameMaxLength, defaults.NameMaxLength)
	setDefaultInt(&cfg.Validation.DescriptionMaxLength, defaults.DescriptionMaxLength)
	setDefaultInt(&cfg.Validation.AddressMaxLength, defaults.AddressMaxLength)
	setDefaultInt(&cfg.Validation.KeywordMaxLength, defaults.KeywordMaxLength)
	setDefaultInt(&cfg.Validation.IngredientMaxLength, defaults.IngredientMaxLength)
	setDefaultInt(&cfg.Validation.SubdomainMaxLength, defaults.SubdomainMaxLength)
	setDefaultInt(&cfg.Validation.EmailNameMaxLength, defaults.EmailNameMaxLength)

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

func setDefaultInt(field *int, value int) {
	if *field == 0 {
		*field = value
	}
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	return ozzo.ValidateStruct(c,
		ozzo.Field(&c.Server),
		ozzo.Field(&c.Database),
		ozzo.Field(&c.Identity),
		ozzo.Field(&c.CORS),
		ozzo.Field(&c.Validation),
		ozzo.Field(&c.Logging),
	)
}

func (s ServerConfig) Validate() error {
	return ozzo.ValidateStruct(&s,
		ozzo.Field(&s.Port, ozzo.Required, ozzo.Min(1), ozzo.Max(65535)),
		ozzo.Field(&s.MaxBodyBytes, ozzo.Min(int64(1))),
	)
}

func (d DatabaseConfig) Validate() error {
	return ozzo.ValidateStruct(&d,
		ozzo.Field(&d.Postgres),
	)
}

func (p PostgresConfig) Validate() error {
	return ozzo.ValidateStruct(&p,
		ozzo.Field(&p.Host, ozzo.When(p.URL == "", ozzo.Required.Error("host or url is required"))),
		ozzo.Field(&p.Database, ozzo.When(p.URL == "", ozzo.Required)),
		ozzo.Field(&p.User, ozzo.When(p.URL == "", ozzo.Required)),
		ozzo.Field(&p.SSLMode, ozzo.In("disable", "require", "verify-ca", "verify-full")),
	)
}

func (i IdentityConfig) Validate() error {
	return ozzo.ValidateStruct(&i,
		ozzo.Field(&i.ServiceDomain, ozzo.Required),
	)
}

func (c CORSConfig) Validate() error {
	return ozzo.ValidateStruct(&c,
		ozzo.Field(&c.Clients, ozzo.Each(is.URL)),
	)
}

func (v ValidationConfig) Validate() error {
	return ozzo.ValidateStruct(&v,
		ozzo.Field(&v.PhoneRegion, ozzo.Required, ozzo.Length(2, 2)),
		ozzo.Field(&v.NameMaxLength, ozzo.Min(1)),
		ozzo.Field(&v.DescriptionMaxLength, ozzo.Min(1)),
		ozzo.Field(&v.AddressMaxLength, ozzo.Min(1)),
		ozzo.Field(&v.KeywordMaxLength, ozzo.Min(1)),
		ozzo.Field(&v.IngredientMaxLength, ozzo.Min(1)),
		ozzo.Field(&v.SubdomainMaxLength, ozzo.Min(1)),
		ozzo.Field(&v.EmailNameMaxLength, ozzo.Min(1)),
	)
}

func (l LoggingConfig) Validate() error {
	return ozzo.ValidateStruct(&l,
		ozzo.Field(&l.Level, ozzo.In("debug", "info", "warn", "error")),
		ozzo.Field(&l.Format, ozzo.In("json", "console")),
	)
}

// Limits returns the field validator limits.
func (v ValidationConfig) Limits() validation.Config {
	return validation.Config{
		NameMaxLength:        v.NameMaxLength,
		DescriptionMaxLength: v.DescriptionMaxLength,
		AddressMaxLength:     v.AddressMaxLength,
		KeywordMaxLength:     v.KeywordMaxLength,
		IngredientMaxLength:  v.IngredientMaxLength,
		SubdomainMaxLength:   v.SubdomainMaxLength,
		EmailNameMaxLength:   v.EmailNameMaxLength,
		PhoneRegion:          v.PhoneRegion,
	}
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
