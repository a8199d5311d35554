package constants

const (
	AppName            = "levelup"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/levelup/levelup.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "levelup-"
	BackupFileSuffix = ".db"

	// Environment variables
	EnvDBConnection = "LEVELUP_DB_CONNECTION"
	EnvTestPostgres = "POSTGRES_TEST_URL"

	// DefaultTimezone is used when neither the profile nor the config names one
	DefaultTimezone = "Local"

	// Profile defaults applied at onboarding
	DefaultWillpower = 50
	DefaultLevel     = 1
)
