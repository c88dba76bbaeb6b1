package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")
	// InvalidArgument is returned when an input fails validation before any side effect.
	InvalidArgument = ErrorKind("Invalid Argument")
	// Forbidden is returned when the actor is not a recognized party for the operation.
	Forbidden = ErrorKind("Forbidden")
	// StateConflict is returned when an operation is not valid for the current
	// submission status, including the lost-update case of two concurrent writers.
	StateConflict = ErrorKind("State Conflict")
	// BudgetExhausted is returned when a campaign budget reservation cannot be satisfied.
	BudgetExhausted = ErrorKind("Budget Exhausted")
	// ZeroPayout is returned when a computed payout is zero and approval is refused.
	ZeroPayout = ErrorKind("Zero Payout")
	// ChainVerification is returned when an on-chain transaction is missing,
	// failed, or does not match the expected transfer.
	ChainVerification = ErrorKind("Chain Verification Failed")
	// ExternalService is returned when a metrics/score provider is unavailable.
	ExternalService = ErrorKind("External Service Unavailable")
	// Duplicate is returned when a uniqueness constraint is violated.
	Duplicate   = ErrorKind("Duplicate")
	Unsupported = ErrorKind("Unsupported")
	Overflow    = ErrorKind("Overflow Int64")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
