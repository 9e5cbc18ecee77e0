package config

const (
	envDataDir   = "ARCADIA_DATA_DIR"
	envDBName    = "ARCADIA_DB_NAME"
	envLogLevel  = "ARCADIA_LOG_LEVEL"
	envLogFormat = "ARCADIA_LOG_FORMAT"
	envSeed      = "ARCADIA_SEED"
	envPersist   = "ARCADIA_PERSIST"

	// AppDirName is the per-user directory under the OS config dir.
	AppDirName = "arcadia-desktop"

	defaultDBName    = "arcadia.db"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultPersist   = true
)
