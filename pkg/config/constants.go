package config

// EnvPrefix is the envconfig prefix applied when parsing the environment.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CABLETRACK_DB_DSN"
	EnvDBHost = "CABLETRACK_DB_HOST"
	EnvDBUser = "CABLETRACK_DB_USER"
	EnvDBName = "CABLETRACK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
