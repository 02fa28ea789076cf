package config

const (
	EnvPrefix = "STONEFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv      = "STONEFRONT_APP_ENV"
	EnvPort        = "STONEFRONT_APP_PORT"
	EnvDBDSN       = "STONEFRONT_DB_DSN"
	EnvDBHost      = "STONEFRONT_DB_HOST"
	EnvDBUser      = "STONEFRONT_DB_USER"
	EnvDBName      = "STONEFRONT_DB_NAME"
	EnvDBPassword  = "STONEFRONT_DB_PASSWORD"
	EnvRedisURL    = "STONEFRONT_REDIS_URL"
	EnvJWTSecret   = "STONEFRONT_JWT_SECRET"
	EnvJWTIssuer   = "STONEFRONT_JWT_ISSUER"
	EnvStripeKey   = "STONEFRONT_STRIPE_SECRET_KEY"
	EnvEnquiryWin  = "STONEFRONT_RATE_LIMIT_ENQUIRY_WINDOW"
	EnvCacheUserTT = "STONEFRONT_CACHE_USER_DETAILS_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
