package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level logged (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info" validate:"oneof=debug info warn error"`
	// Format is the log encoding (json, console).
	Format string `mapstructure:"format" default:"console" validate:"oneof=json console"`
}
