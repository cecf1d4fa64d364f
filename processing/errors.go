package processing

import "fmt"

// CallPolicy names the failure contract of an external call site.
// Required failures abort the whole run; BestEffort failures are absorbed
// and replaced with a documented fallback value.
type CallPolicy string

const (
	PolicyRequired   CallPolicy = "required"
	PolicyBestEffort CallPolicy = "best-effort"
)

// ValidationError reports bad caller input detected before any external call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UpstreamError reports a failed or malformed response from the generation
// service on a Required call. It is fatal to the current run.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// RecoverableError marks a BestEffort call failure. It never reaches the
// caller; it exists so fallback paths can log what was absorbed.
type RecoverableError struct {
	Op  string
	Err error
}

func (e *RecoverableError) Error() string {
	return fmt.Sprintf("recoverable failure during %s: %v", e.Op, e.Err)
}

func (e *RecoverableError) Unwrap() error {
	return e.Err
}
