// Package config loads application configuration.
//
// Values come from the process environment, optionally seeded from a .env file
// (godotenv), and are mapped onto nested keys by viper: STORAGE_BUCKET sets
// storage.bucket. Defaults live in the `default` struct tag of each partial
// configuration, and fields carrying an `env` tag also accept that legacy name
// (S3_BUCKET_NAME, AWS_REGION, CONTENT_FOLDER_PATH, ...).
//
// # Validation
//
// Commands validate only the sections they use:
//
//	if err := cfg.Validate("storage", "content", "output"); err != nil {
//	    return err
//	}
//
// The error lists every invalid field with the variables that set it.
package config
