package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one fingerprint run across every record it emits.
	FieldRunID = "run_id"
	// FieldRoot is the directory being fingerprinted.
	FieldRoot = "root"
	// FieldPath is the filesystem path an entry-level record refers to.
	FieldPath = "path"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)
