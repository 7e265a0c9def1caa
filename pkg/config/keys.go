package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "JOLLYSHOP"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Canonical environment variable names, used by tests and error messages.
const (
	EnvAppEnv                 = "JOLLYSHOP_APP_ENV"
	EnvPort                   = "JOLLYSHOP_APP_PORT"
	EnvDBDSN                  = "JOLLYSHOP_DB_DSN"
	EnvDBHost                 = "JOLLYSHOP_DB_HOST"
	EnvDBUser                 = "JOLLYSHOP_DB_USER"
	EnvDBName                 = "JOLLYSHOP_DB_NAME"
	EnvRedisURL               = "JOLLYSHOP_REDIS_URL"
	EnvJWTSecret              = "JOLLYSHOP_JWT_SECRET"
	EnvJWTIssuer              = "JOLLYSHOP_JWT_ISSUER"
	EnvJWTExpMins             = "JOLLYSHOP_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "JOLLYSHOP_REFRESH_TOKEN_TTL_MINUTES"
	EnvUploadDir              = "JOLLYSHOP_UPLOAD_DIR"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
