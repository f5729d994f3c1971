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
	FeatureFlags FeatureFlagsConfig
	Locks        LockConfig
	Payments     PaymentsConfig
	Stripe       StripeConfig
	Square       SquareConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	RateLimit    RateLimitConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"HAPPYHOURS_APP_ENV" required:"true"`
	Port         string   `envconfig:"HAPPYHOURS_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"HAPPYHOURS_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"HAPPYHOURS_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"HAPPYHOURS_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"HAPPYHOURS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"HAPPYHOURS_DB_DSN"`
	Driver string `envconfig:"HAPPYHOURS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HAPPYHOURS_DB_HOST"`
	LegacyPort     int    `envconfig:"HAPPYHOURS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HAPPYHOURS_DB_USER"`
	LegacyPassword string `envconfig:"HAPPYHOURS_DB_PASSWORD"`
	LegacyName     string `envconfig:"HAPPYHOURS_DB_NAME"`
	LegacySSLMode  string `envconfig:"HAPPYHOURS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HAPPYHOURS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HAPPYHOURS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HAPPYHOURS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HAPPYHOURS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HAPPYHOURS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HAPPYHOURS_REDIS_ADDR"`
	Password     string        `envconfig:"HAPPYHOURS_REDIS_PASSWORD"`
	DB           int           `envconfig:"HAPPYHOURS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HAPPYHOURS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HAPPYHOURS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HAPPYHOURS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HAPPYHOURS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HAPPYHOURS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig holds the settings used to verify shopper access tokens. Tokens
// are minted by the identity service; this API only verifies them.
type JWTConfig struct {
	Secret            string `envconfig:"HAPPYHOURS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HAPPYHOURS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HAPPYHOURS_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HAPPYHOURS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HAPPYHOURS_AUTO_MIGRATE" default:"false"`
}

// LockConfig tunes the per-shopper lock that serializes cart mutations.
type LockConfig struct {
	TTL  time.Duration `envconfig:"HAPPYHOURS_LOCK_TTL" default:"10s"`
	Wait time.Duration `envconfig:"HAPPYHOURS_LOCK_WAIT" default:"3s"`
}

type PaymentsConfig struct {
	Timeout  time.Duration `envconfig:"HAPPYHOURS_PAYMENT_TIMEOUT" default:"20s"`
	Currency string        `envconfig:"HAPPYHOURS_PAYMENT_CURRENCY" default:"usd"`
}

type StripeConfig struct {
	APIKey string `envconfig:"HAPPYHOURS_STRIPE_API_KEY"`
	Env    string `envconfig:"HAPPYHOURS_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type SquareConfig struct {
	AccessToken string `envconfig:"HAPPYHOURS_SQUARE_ACCESS_TOKEN"`
	LocationID  string `envconfig:"HAPPYHOURS_SQUARE_LOCATION_ID"`
	Env         string `envconfig:"HAPPYHOURS_SQUARE_ENV" default:"sandbox"`
}

// Environment returns the normalized Square environment (sandbox/production).
func (s SquareConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type GCPConfig struct {
	ProjectID       string `envconfig:"HAPPYHOURS_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"HAPPYHOURS_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"HAPPYHOURS_PUBSUB_ORDERS_TOPIC" default:"hh-order-events"`
	OrdersSubscription string `envconfig:"HAPPYHOURS_PUBSUB_ORDERS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"HAPPYHOURS_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"HAPPYHOURS_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"HAPPYHOURS_OUTBOX_MAX_ATTEMPTS" default:"10"`
	RetentionDays  int `envconfig:"HAPPYHOURS_OUTBOX_RETENTION_DAYS" default:"30"`
}

// CronConfig drives the maintenance worker cadence.
type CronConfig struct {
	Interval time.Duration `envconfig:"HAPPYHOURS_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"HAPPYHOURS_CRON_LOCK_TTL" default:"55m"`
}

// RateLimitConfig throttles payment attempts. A zero limit disables that counter.
type RateLimitConfig struct {
	PaymentWindow    time.Duration `envconfig:"HAPPYHOURS_RATE_LIMIT_PAYMENT_WINDOW" default:"1m"`
	PaymentIPLimit   int           `envconfig:"HAPPYHOURS_RATE_LIMIT_PAYMENT_IP" default:"20"`
	PaymentUserLimit int           `envconfig:"HAPPYHOURS_RATE_LIMIT_PAYMENT_USER" default:"5"`
}

func (db *DBConfig) ensureDSN(sqlite bool) error {
	if sqlite {
		db.Driver = DBDriverSQLite
		if db.DSN == "" {
			db.DSN = defaultSQLiteDSN
		}
		return nil
	}
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
