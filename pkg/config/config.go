package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Orders        OrdersConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"IRONI_APP_ENV" required:"true"`
	Port         string `envconfig:"IRONI_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"IRONI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"IRONI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"IRONI_DB_DSN"`
	Driver string `envconfig:"IRONI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"IRONI_DB_HOST"`
	LegacyPort     int    `envconfig:"IRONI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"IRONI_DB_USER"`
	LegacyPassword string `envconfig:"IRONI_DB_PASSWORD"`
	LegacyName     string `envconfig:"IRONI_DB_NAME"`
	LegacySSLMode  string `envconfig:"IRONI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"IRONI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"IRONI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"IRONI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"IRONI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"IRONI_REDIS_URL"`
	Address      string        `envconfig:"IRONI_REDIS_ADDR"`
	Password     string        `envconfig:"IRONI_REDIS_PASSWORD"`
	DB           int           `envconfig:"IRONI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"IRONI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"IRONI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"IRONI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"IRONI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"IRONI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. Rate
// limiting is skipped outright when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// JWTConfig carries token signing parameters. The secret has no default on
// purpose: the process refuses to boot without one.
type JWTConfig struct {
	Secret            string `envconfig:"IRONI_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"IRONI_JWT_ISSUER" default:"ironi-api"`
	ExpirationMinutes int    `envconfig:"IRONI_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TokenTTL returns the access token lifetime (defaults to seven days).
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"IRONI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"IRONI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"IRONI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"IRONI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"IRONI_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"IRONI_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"IRONI_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"IRONI_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"IRONI_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"IRONI_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"IRONI_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type OrdersConfig struct {
	RepeatPickupOffset time.Duration `envconfig:"IRONI_ORDERS_REPEAT_PICKUP_OFFSET" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"IRONI_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"IRONI_SQLITE_PATH" default:"ironi.db"`
	AutoMigrate bool   `envconfig:"IRONI_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"IRONI_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
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
