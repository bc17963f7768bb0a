package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "PLATEFINDER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "PLATEFINDER_DB_DSN"
	EnvDBHost = "PLATEFINDER_DB_HOST"
	EnvDBUser = "PLATEFINDER_DB_USER"
	EnvDBName = "PLATEFINDER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Uploads       UploadsConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"PLATEFINDER_APP_ENV" required:"true"`
	Port         string `envconfig:"PLATEFINDER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PLATEFINDER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PLATEFINDER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PLATEFINDER_DB_DSN"`
	Driver string `envconfig:"PLATEFINDER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PLATEFINDER_DB_HOST"`
	LegacyPort     int    `envconfig:"PLATEFINDER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PLATEFINDER_DB_USER"`
	LegacyPassword string `envconfig:"PLATEFINDER_DB_PASSWORD"`
	LegacyName     string `envconfig:"PLATEFINDER_DB_NAME"`
	LegacySSLMode  string `envconfig:"PLATEFINDER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PLATEFINDER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PLATEFINDER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PLATEFINDER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PLATEFINDER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PLATEFINDER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PLATEFINDER_REDIS_ADDR"`
	Password     string        `envconfig:"PLATEFINDER_REDIS_PASSWORD"`
	DB           int           `envconfig:"PLATEFINDER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PLATEFINDER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PLATEFINDER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PLATEFINDER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PLATEFINDER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PLATEFINDER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PLATEFINDER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PLATEFINDER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PLATEFINDER_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	MinLength        int `envconfig:"PLATEFINDER_PASSWORD_MIN_LENGTH" default:"6"`
	MaxLength        int `envconfig:"PLATEFINDER_PASSWORD_MAX_LENGTH" default:"72"`
	ArgonMemoryKB    int `envconfig:"PLATEFINDER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PLATEFINDER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PLATEFINDER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PLATEFINDER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PLATEFINDER_ARGON_KEY_LEN" default:"32"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"PLATEFINDER_UPLOADS_DIR" default:"uploads"`
	PublicPath  string `envconfig:"PLATEFINDER_UPLOADS_PUBLIC_PATH" default:"/uploads"`
	MaxUploadMB int    `envconfig:"PLATEFINDER_UPLOADS_MAX_MB" default:"5"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"PLATEFINDER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"PLATEFINDER_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"PLATEFINDER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"PLATEFINDER_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"PLATEFINDER_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"PLATEFINDER_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PLATEFINDER_AUTO_MIGRATE" default:"false"`

	// ClaimAutoApprove makes new ownership claims approve immediately.
	// Turn it off to require an explicit decision per claim.
	ClaimAutoApprove bool `envconfig:"PLATEFINDER_CLAIM_AUTO_APPROVE" default:"true"`
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
