package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "sweeper",
			TimeoutSeconds: 2,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("SQLite File Creates Directory", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "nested", "sweeper.db")

		db, err := Connect(Config{Driver: DriverSQLite, Name: name})
		assert.NoError(t, err)
		assert.NotNil(t, db)
		assert.DirExists(t, filepath.Dir(name))
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "postgres"})
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}
