package convert

import (
	"errors"
	"fmt"

	"github.com/Areng14/BeePEE/pkg/formats"
)

var (
	// ErrEmptyOutput is returned when the written output file has no content.
	ErrEmptyOutput = errors.New("output file is empty")
	// ErrNonFiniteVertex is returned when a transformed vertex no longer
	// fits in a 3DS float32 coordinate.
	ErrNonFiniteVertex = errors.New("vertex coordinate out of float32 range")
)

// ValidationError reports a bad command-line argument or option.
// It is raised before any file is read.
type ValidationError struct {
	Arg    string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Arg, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Arg, e.Value, e.Reason)
}

// IOError reports a filesystem failure on the input or output path.
type IOError struct {
	Op   string // stat, read, mkdir, write, verify
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// EncodeError reports a mesh that cannot be represented in the output format.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "encoding 3DS: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// InternalError reports a broken mesh invariant that reached the encoder.
// It indicates a bug in the parser or triangulator, not bad input.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return "internal consistency error: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// ExitCode maps a conversion error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ExitValidation
	}
	return ExitFailure
}

// Describe returns a short description of the stage that failed.
func Describe(err error) string {
	var (
		ve *ValidationError
		pe *formats.ParseError
		ee *EncodeError
		ie *InternalError
		oe *IOError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "Invalid arguments"
	case errors.As(err, &pe):
		return "Failed to parse OBJ file"
	case errors.As(err, &ee):
		return "Failed to encode 3DS file"
	case errors.As(err, &ie):
		return "Mesh failed consistency check"
	case errors.As(err, &oe):
		switch oe.Op {
		case "stat", "read":
			return "Input file not readable"
		case "verify":
			return "3DS file was not created"
		default:
			return "Failed to write 3DS file"
		}
	default:
		return "Conversion failed"
	}
}
