package config

// EnvPrefix is handed to envconfig; every field declares its full name explicitly.
const EnvPrefix = "INVENTORY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	DefaultSQLiteDSN         = "file:inventory.db?_foreign_keys=on"
	DefaultImportMaxUploadKB = 2048
)

const (
	EnvAppEnv      = "INVENTORY_APP_ENV"
	EnvPort        = "INVENTORY_APP_PORT"
	EnvAppVersion  = "INVENTORY_APP_VERSION"
	EnvLogLevel    = "INVENTORY_LOG_LEVEL"
	EnvLogFormat   = "INVENTORY_LOG_FORMAT"
	EnvDBDSN       = "INVENTORY_DB_DSN"
	EnvDBDriver    = "INVENTORY_DB_DRIVER"
	EnvDBHost      = "INVENTORY_DB_HOST"
	EnvDBPort      = "INVENTORY_DB_PORT"
	EnvDBUser      = "INVENTORY_DB_USER"
	EnvDBPassword  = "INVENTORY_DB_PASSWORD"
	EnvDBName      = "INVENTORY_DB_NAME"
	EnvRedisURL    = "INVENTORY_REDIS_URL"
	EnvJWTSecret   = "INVENTORY_JWT_SECRET"
	EnvJWTIssuer   = "INVENTORY_JWT_ISSUER"
	EnvJWTExpMins  = "INVENTORY_JWT_EXPIRATION_MINUTES"
	EnvUseSQLite   = "INVENTORY_USE_SQLITE"
	EnvRequireAuth = "INVENTORY_REQUIRE_AUTH"
	EnvImportMaxKB = "INVENTORY_IMPORT_MAX_UPLOAD_KB"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
