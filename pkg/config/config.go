package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BALASHOP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BALASHOP_DB_DSN"
	EnvDBHost = "BALASHOP_DB_HOST"
	EnvDBUser = "BALASHOP_DB_USER"
	EnvDBName = "BALASHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Reports      ReportsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BALASHOP_APP_ENV" default:"dev"`
	Port         string `envconfig:"BALASHOP_APP_PORT" default:"3001"`
	LogLevel     string `envconfig:"BALASHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BALASHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BALASHOP_DB_DSN"`
	Driver string `envconfig:"BALASHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BALASHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"BALASHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BALASHOP_DB_USER"`
	LegacyPassword string `envconfig:"BALASHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"BALASHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"BALASHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BALASHOP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BALASHOP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BALASHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BALASHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: when URL is empty the report dispatch lock falls
// back to an in-process mutex.
type RedisConfig struct {
	URL          string        `envconfig:"BALASHOP_REDIS_URL"`
	Password     string        `envconfig:"BALASHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"BALASHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BALASHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BALASHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BALASHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BALASHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BALASHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type ReportsConfig struct {
	Location string        `envconfig:"BALASHOP_REPORTS_LOCATION" default:"Local"`
	LockTTL  time.Duration `envconfig:"BALASHOP_REPORTS_LOCK_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"BALASHOP_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"BALASHOP_SQLITE_PATH" default:"balashop.db"`
	AutoMigrate bool   `envconfig:"BALASHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
