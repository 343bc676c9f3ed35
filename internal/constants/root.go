package constants

const (
	AppName            = "dayweave"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/dayweave/dayweave.db"
	Version            = "v0.1.0"
	DefaultUserID      = "default"

	// DateFormat is the canonical day key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the local time-of-day format used for windows (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dayweave-"
	BackupFileSuffix = ".db"

	// DefaultProjectDurationMin is used for projects with no explicit or derived duration
	DefaultProjectDurationMin = 60

	// EnvPostgresConnection holds a postgres connection string when the keyring is not used
	EnvPostgresConnection = "DAYWEAVE_DB_CONNECTION"
)
