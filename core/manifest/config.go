package manifest

// Config holds configuration for scan output.
type Config struct {
	// Dir is the directory that receives the report and the manifest.
	Dir string `mapstructure:"dir" default:"output" validate:"required"`
}
