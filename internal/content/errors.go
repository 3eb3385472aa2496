package content

import "fmt"

// ValidationError reports a request that is rejected before any remote call
// is issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid generation request: " + e.Message
}

// SchemaError reports a generation response that was received but does not
// parse against the expected structured-output schema.
type SchemaError struct {
	Format Format
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response for %s does not match the expected schema: %v", e.Format, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
