package backup

// Config holds the backup layout.
type Config struct {
	// Prefix is the object key prefix all profiles are stored under.
	Prefix string `mapstructure:"prefix" default:"profiles"`
}
