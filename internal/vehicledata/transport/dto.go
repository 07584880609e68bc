// Package transport holds the vehicle data lookup types shared with callers.
package transport

// FailureKind names why a plate lookup did not produce data.
type FailureKind string

const (
	FailureNone               FailureKind = ""
	FailureMissingCredentials FailureKind = "missing_credentials"
	FailureTimeout            FailureKind = "timeout"
	FailureConnection         FailureKind = "connection"
	FailureHTTPStatus         FailureKind = "http_status"
	FailureInvalidJSON        FailureKind = "invalid_json"
	FailureNoData             FailureKind = "no_data"
	FailureUnexpected         FailureKind = "unexpected"
)

// LookupResult is the outcome of a plate lookup. Lookups never return an
// error; failures are described by Failure and a user-facing Message.
type LookupResult struct {
	OK      bool
	Data    map[string]any
	Message string
	Failure FailureKind
}

// PlateCheck is the outcome of plate format validation.
type PlateCheck struct {
	Clean  string
	Valid  bool
	Reason string
}
