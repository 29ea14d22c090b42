package config

import (
	"reflect"
	"strings"

	"content-sweeper/core/cleanup"
	"content-sweeper/core/corpus"
	"content-sweeper/core/database"
	"content-sweeper/core/logger"
	"content-sweeper/core/manifest"
	"content-sweeper/core/metrics"
	"content-sweeper/core/server"
	"content-sweeper/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Content holds configuration for the content corpus.
	Content corpus.Config `mapstructure:"content"`
	// Output holds configuration for the report and manifest files.
	Output manifest.Config `mapstructure:"output"`
	// Cleanup holds configuration for the destroy phase.
	Cleanup cleanup.Config `mapstructure:"cleanup"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional audit ledger.
	Database database.Config `mapstructure:"database"`
	// Server holds configuration for the HTTP review server.
	Server server.Config `mapstructure:"server"`
	// Metrics holds configuration for metrics export.
	Metrics metrics.Config `mapstructure:"metrics"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// envKey returns the canonical environment variable for a viper key.
func envKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags. Fields with an 'env' tag are also
// bound to that legacy variable name, after the canonical one.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)

		if alias := field.Tag.Get("env"); alias != "" {
			_ = v.BindEnv(key, envKey(key), alias)
		}
	}
}
