package metrics

// Config holds configuration for metrics export.
type Config struct {
	// Textfile is the path of a node_exporter textfile to write after each run. Empty disables export.
	Textfile string `mapstructure:"textfile" default:""`
}
