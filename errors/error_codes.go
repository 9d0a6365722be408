package errors

import "fmt"

// ERR is the numeric code carried by every *Error.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5

	// encoding errors
	ERR_INVALID_LENGTH     ERR = 100
	ERR_INVALID_ADDRESS    ERR = 101
	ERR_ALLOCATION_FAILURE ERR = 102
	ERR_ENCODING           ERR = 103
)

var ERR_name = map[int32]string{
	0:   "UNKNOWN",
	1:   "INVALID_ARGUMENT",
	4:   "PROCESSING",
	5:   "CONFIGURATION",
	100: "INVALID_LENGTH",
	101: "INVALID_ADDRESS",
	102: "ALLOCATION_FAILURE",
	103: "ENCODING",
}

// Enum returns the symbolic name of the code.
func (x ERR) Enum() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return fmt.Sprintf("ERR(%d)", int32(x))
}

func (x ERR) String() string {
	return x.Enum()
}

func (x ERR) valid() bool {
	_, ok := ERR_name[int32(x)]
	return ok
}
