package corpus

// Config holds configuration for the content corpus.
type Config struct {
	// Path is the root directory holding the content files.
	Path string `mapstructure:"path" default:"content" env:"CONTENT_FOLDER_PATH" validate:"required"`
	// Workers bounds the number of files read concurrently.
	Workers int `mapstructure:"workers" default:"16" validate:"min=1"`
}
