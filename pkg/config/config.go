package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Checkout     CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SNACKSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"SNACKSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SNACKSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SNACKSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SNACKSHOP_DB_DSN"`
	Driver string `envconfig:"SNACKSHOP_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SNACKSHOP_DB_HOST"`
	Port     int    `envconfig:"SNACKSHOP_DB_PORT" default:"5432"`
	User     string `envconfig:"SNACKSHOP_DB_USER"`
	Password string `envconfig:"SNACKSHOP_DB_PASSWORD"`
	Name     string `envconfig:"SNACKSHOP_DB_NAME"`
	SSLMode  string `envconfig:"SNACKSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SNACKSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SNACKSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SNACKSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SNACKSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either SNACKSHOP_DB_DSN or host/user/name settings are required")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SNACKSHOP_REDIS_URL"`
	Address      string        `envconfig:"SNACKSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SNACKSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SNACKSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SNACKSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SNACKSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SNACKSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SNACKSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SNACKSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SNACKSHOP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SNACKSHOP_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SNACKSHOP_JWT_EXPIRATION_MINUTES" default:"720"`
	SessionTTLMinutes int    `envconfig:"SNACKSHOP_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SNACKSHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SNACKSHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SNACKSHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SNACKSHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SNACKSHOP_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SNACKSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SNACKSHOP_AUTO_MIGRATE" default:"false"`
}

type CheckoutConfig struct {
	// MaxLines caps how many distinct snacks one checkout may carry.
	MaxLines int `envconfig:"SNACKSHOP_CHECKOUT_MAX_LINES" default:"100"`
}
