package config

const (
	EnvPrefix = "HAPPYHOURS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:happyhours.db?cache=shared&_foreign_keys=on"
)

const (
	EnvAppEnv     = "HAPPYHOURS_APP_ENV"
	EnvPort       = "HAPPYHOURS_APP_PORT"
	EnvLogLevel   = "HAPPYHOURS_LOG_LEVEL"
	EnvDBDSN      = "HAPPYHOURS_DB_DSN"
	EnvDBHost     = "HAPPYHOURS_DB_HOST"
	EnvDBPort     = "HAPPYHOURS_DB_PORT"
	EnvDBUser     = "HAPPYHOURS_DB_USER"
	EnvDBPassword = "HAPPYHOURS_DB_PASSWORD"
	EnvDBName     = "HAPPYHOURS_DB_NAME"
	EnvUseSQLite  = "HAPPYHOURS_USE_SQLITE"
	EnvRedisURL   = "HAPPYHOURS_REDIS_URL"
	EnvJWTSecret  = "HAPPYHOURS_JWT_SECRET"
	EnvJWTIssuer  = "HAPPYHOURS_JWT_ISSUER"
	EnvLockTTL    = "HAPPYHOURS_LOCK_TTL"
	EnvLockWait   = "HAPPYHOURS_LOCK_WAIT"

	EnvPaymentTimeout  = "HAPPYHOURS_PAYMENT_TIMEOUT"
	EnvPaymentCurrency = "HAPPYHOURS_PAYMENT_CURRENCY"
	EnvStripeAPIKey    = "HAPPYHOURS_STRIPE_API_KEY"
	EnvSquareToken     = "HAPPYHOURS_SQUARE_ACCESS_TOKEN"
	EnvSquareLocation  = "HAPPYHOURS_SQUARE_LOCATION_ID"
	EnvGCPProjectID    = "HAPPYHOURS_GCP_PROJECT_ID"
	EnvPubSubOrders    = "HAPPYHOURS_PUBSUB_ORDERS_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
