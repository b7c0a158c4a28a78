package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrder         ErrorCode = 102
	ErrCodeTypeMismatch         ErrorCode = 103

	// Series/data errors (200-299)
	ErrCodeEmptySeries      ErrorCode = 200
	ErrCodeComputeFailed    ErrorCode = 201
	ErrCodeProducerNotFound ErrorCode = 202
	ErrCodeWaitCancelled    ErrorCode = 203

	// Trading errors (500-599)
	ErrCodeOrderRejected     ErrorCode = 500
	ErrCodePositionLookup    ErrorCode = 501
	ErrCodeBrokerUnavailable ErrorCode = 502
)
