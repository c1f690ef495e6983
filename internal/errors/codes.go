package errors

// Code classifies an error for callers that branch on failure kind
type Code string

// Error codes. These cover every failure the engine reports: absent
// entities, uniqueness/ownership conflicts, permission checks, illegal
// state transitions, bad inputs, and backing-store failures.
const (
	CodeOK               Code = "OK"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeInvalidState     Code = "INVALID_STATE"
	CodeUnavailable      Code = "UNAVAILABLE"
	CodeInternal         Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
