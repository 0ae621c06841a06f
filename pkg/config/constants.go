package config

// EnvPrefix is passed to envconfig; individual fields carry absolute names.
const EnvPrefix = "ironi"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "IRONI_DB_DSN"
	EnvDBHost = "IRONI_DB_HOST"
	EnvDBUser = "IRONI_DB_USER"
	EnvDBName = "IRONI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
