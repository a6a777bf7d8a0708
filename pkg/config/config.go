package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace for all GarageMaster variables.
const EnvPrefix = "GARAGEMASTER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	Password PasswordConfig
	Loyalty  LoyaltyConfig
	Journal  JournalConfig
	Shop     ShopConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Loyalty.EarnDivisor <= 0 {
		return nil, fmt.Errorf("loyalty earn divisor must be positive")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GARAGEMASTER_APP_ENV" default:"dev"`
	Port         string `envconfig:"GARAGEMASTER_APP_PORT" default:"8990"`
	LogLevel     string `envconfig:"GARAGEMASTER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GARAGEMASTER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path            string        `envconfig:"GARAGEMASTER_DB_PATH" default:"garagemaster.db"`
	BusyTimeout     time.Duration `envconfig:"GARAGEMASTER_DB_BUSY_TIMEOUT" default:"5s"`
	AutoMigrate     bool          `envconfig:"GARAGEMASTER_DB_AUTO_MIGRATE" default:"true"`
	SeedOnFirstBoot bool          `envconfig:"GARAGEMASTER_DB_SEED" default:"true"`
}

// DSN returns the SQLite connection string with the pragmas the engine needs:
// foreign keys on and a busy timeout so a second local process fails loudly
// instead of corrupting a write.
func (d DBConfig) DSN() string {
	sep := "?"
	if strings.Contains(d.Path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("file:%s%s_fk=1&_busy_timeout=%d", d.Path, sep, d.BusyTimeout.Milliseconds())
}

type JWTConfig struct {
	Secret            string `envconfig:"GARAGEMASTER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GARAGEMASTER_JWT_ISSUER" default:"garagemaster"`
	ExpirationMinutes int    `envconfig:"GARAGEMASTER_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GARAGEMASTER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GARAGEMASTER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GARAGEMASTER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GARAGEMASTER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GARAGEMASTER_ARGON_KEY_LEN" default:"32"`
}

type LoyaltyConfig struct {
	// EarnDivisor controls points earned per sale: floor(total / EarnDivisor).
	// One point redeems as one currency unit of discount.
	EarnDivisor int `envconfig:"GARAGEMASTER_LOYALTY_EARN_DIVISOR" default:"100"`
}

type JournalConfig struct {
	// Dir is an optional directory for plain-text day journals. Empty disables
	// the file mirror; journal entries are always persisted in the database.
	Dir string `envconfig:"GARAGEMASTER_JOURNAL_DIR"`
}

type ShopConfig struct {
	Name    string `envconfig:"GARAGEMASTER_SHOP_NAME" default:"GARAGE MASTER"`
	Address string `envconfig:"GARAGEMASTER_SHOP_ADDRESS"`
	Phone   string `envconfig:"GARAGEMASTER_SHOP_PHONE"`
}
