package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	SMTP         SMTPConfig
	Storage      StorageConfig
	Bank         BankConfig
	Outbox       OutboxConfig
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
	Env          string `envconfig:"JOLLYSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"JOLLYSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"JOLLYSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JOLLYSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"JOLLYSHOP_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"JOLLYSHOP_DB_DSN"`
	Driver string `envconfig:"JOLLYSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"JOLLYSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"JOLLYSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JOLLYSHOP_DB_USER"`
	LegacyPassword string `envconfig:"JOLLYSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"JOLLYSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"JOLLYSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JOLLYSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JOLLYSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JOLLYSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JOLLYSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JOLLYSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"JOLLYSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"JOLLYSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"JOLLYSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JOLLYSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JOLLYSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JOLLYSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JOLLYSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JOLLYSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"JOLLYSHOP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"JOLLYSHOP_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"JOLLYSHOP_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"JOLLYSHOP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"JOLLYSHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"JOLLYSHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"JOLLYSHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"JOLLYSHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"JOLLYSHOP_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	Window          time.Duration `envconfig:"JOLLYSHOP_RATE_LIMIT_WINDOW" default:"1m"`
	RequestLimit    int           `envconfig:"JOLLYSHOP_RATE_LIMIT_REQUESTS" default:"120"`
	LoginWindow     time.Duration `envconfig:"JOLLYSHOP_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"JOLLYSHOP_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"JOLLYSHOP_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"JOLLYSHOP_AUTO_MIGRATE" default:"false"`
}

type SMTPConfig struct {
	Host        string `envconfig:"JOLLYSHOP_SMTP_HOST"`
	Port        int    `envconfig:"JOLLYSHOP_SMTP_PORT" default:"587"`
	Username    string `envconfig:"JOLLYSHOP_SMTP_USERNAME"`
	Password    string `envconfig:"JOLLYSHOP_SMTP_PASSWORD"`
	DefaultFrom string `envconfig:"JOLLYSHOP_SMTP_FROM_EMAIL" default:"orders@jollyshop.ng"`
}

// Enabled reports whether outbound email is configured at all.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type StorageConfig struct {
	UploadDir   string `envconfig:"JOLLYSHOP_UPLOAD_DIR" default:"./uploads"`
	MaxUploadMB int    `envconfig:"JOLLYSHOP_MAX_UPLOAD_MB" default:"10"`
}

// BankConfig carries the transfer details surfaced during checkout.
type BankConfig struct {
	Name          string `envconfig:"JOLLYSHOP_BANK_NAME" default:"GTBank"`
	AccountNumber string `envconfig:"JOLLYSHOP_BANK_ACCOUNT_NUMBER" default:"0123456789"`
	AccountName   string `envconfig:"JOLLYSHOP_BANK_ACCOUNT_NAME" default:"JollyShop Nigeria Ltd"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"JOLLYSHOP_OUTBOX_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"JOLLYSHOP_OUTBOX_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"JOLLYSHOP_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
