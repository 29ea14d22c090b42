package checks

const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)
