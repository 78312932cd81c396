// Package fault holds the error categories shared by the genie resource
// decoders.
//
// Every error returned by a decoder wraps exactly one of the constants below,
// so callers can classify failures with errors.Is (or errors.Cause) without
// parsing messages.
package fault

// Const is the type for constant error values.
type Const string

// Error implements error for Const returning the string value of the const.
func (e Const) Error() string { return string(e) }

const (
	// ErrFormat is returned when a declared length or count in a resource
	// does not match what the format requires.
	ErrFormat = Const("format error")

	// ErrRange is reported when a computed index falls outside of a loaded
	// collection. It is usually recovered from by falling back to a neutral
	// value.
	ErrRange = Const("range error")

	// ErrPrecondition is returned when an operation is invoked on a
	// component in the wrong state, or with missing inputs.
	ErrPrecondition = Const("precondition failed")

	// ErrIO is returned when a read or seek goes beyond the available bytes
	// of a source.
	ErrIO = Const("i/o error")
)
