package logging

// Standardized field names for structured logging.
const (
	FieldFile      = "file_path"
	FieldColumn    = "column"
	FieldValue     = "value"
	FieldIndex     = "index"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldApplied   = "applied"
	FieldDelimiter = "delimiter"
	FieldLine      = "line"
	FieldCommand   = "command"
)
