package logging

// Structured field keys shared across packages.
const (
	FieldComponent = "component"
	FieldGame      = "game"
	FieldSession   = "session"
	FieldPlayer    = "player"
	FieldValue     = "value"
	FieldKey       = "key"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldError     = "error"
)
