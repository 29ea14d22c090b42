package cleanup

// Config holds configuration for the destroy phase.
type Config struct {
	// Workers bounds concurrent deletes. 1 deletes one object at a time.
	Workers int `mapstructure:"workers" default:"1" validate:"min=1,max=64"`
}
