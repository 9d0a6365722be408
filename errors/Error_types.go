package errors

var (
	ErrInvalidArgument   = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrProcessing        = New(ERR_PROCESSING, "error processing")
	ErrConfiguration     = New(ERR_CONFIGURATION, "configuration error")
	ErrInvalidLength     = New(ERR_INVALID_LENGTH, "invalid length")
	ErrInvalidAddress    = New(ERR_INVALID_ADDRESS, "invalid address")
	ErrAllocationFailure = New(ERR_ALLOCATION_FAILURE, "allocation failure")
	ErrEncoding          = New(ERR_ENCODING, "encoding error")
)

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}

func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}

func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}

func NewInvalidLengthError(message string, params ...interface{}) error {
	return New(ERR_INVALID_LENGTH, message, params...)
}

// NewFieldLengthError is an invalid length error carrying the offending length
// and the limit it was checked against as data.
func NewFieldLengthError(length, limit int, message string, params ...interface{}) *Error {
	return New(ERR_INVALID_LENGTH, message, params...).WithData("length", length).WithData("limit", limit)
}

func NewInvalidAddressError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ADDRESS, message, params...)
}

func NewAllocationFailureError(message string, params ...interface{}) error {
	return New(ERR_ALLOCATION_FAILURE, message, params...)
}

func NewEncodingError(message string, params ...interface{}) error {
	return New(ERR_ENCODING, message, params...)
}
