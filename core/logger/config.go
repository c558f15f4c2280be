package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding (json, console).
	Format string `mapstructure:"format" default:"console"`
	// Output is where logs are written (stderr, stdout or a file path).
	Output string `mapstructure:"output" default:"stderr"`
}
