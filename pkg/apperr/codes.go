package apperr

// Code classifies an error into one of the outcomes the API exposes.
type Code string

const (
	CodeUnknown         Code = "UNKNOWN"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	// CodeNoOp marks a request that had no semantic effect (self-follow,
	// re-follow of an existing edge). Callers can suppress redundant UI
	// feedback; it is not a failure.
	CodeNoOp            Code = "NO_OP"
	CodeConflict        Code = "CONFLICT"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeInternal        Code = "INTERNAL"
)
