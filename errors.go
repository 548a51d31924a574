package efx

import (
	"errors"
	"fmt"
)

// Root errors. Every error returned by this package wraps exactly one of them,
// so callers can classify failures with errors.Is.
var (
	// ErrFormat indicates that the input bytes do not describe a well-formed effect file.
	ErrFormat = errors.New("efx: malformed data")

	// ErrUnsupported indicates a structurally valid input that this package cannot handle,
	// such as an unknown game target or a scheduler kind that does not exist in a version.
	ErrUnsupported = errors.New("efx: unsupported")

	// ErrValidation indicates that an in-memory model cannot be written as-is.
	ErrValidation = errors.New("efx: validation failed")
)

var (
	// ErrInvalidMagic indicates the file does not start with a known EFX magic.
	ErrInvalidMagic = fmt.Errorf("%w: invalid magic", ErrFormat)

	// ErrTruncatedData indicates that a read ran past the end of the available bytes.
	ErrTruncatedData = fmt.Errorf("%w: truncated data", ErrFormat)

	// ErrNonZeroPadding indicates that a region declared as padding holds a non-zero byte.
	ErrNonZeroPadding = fmt.Errorf("%w: non-zero padding", ErrFormat)

	// ErrChunkSize indicates a chunk whose declared size is too small or overruns the file.
	ErrChunkSize = fmt.Errorf("%w: chunk size out of range", ErrFormat)

	// ErrCommandVersion indicates a command whose version marker is not 0x100.
	ErrCommandVersion = fmt.Errorf("%w: bad command version", ErrFormat)

	// ErrTotalSize indicates the header total size disagrees with the file length.
	ErrTotalSize = fmt.Errorf("%w: total size mismatch", ErrFormat)

	// ErrAmbiguousTarget indicates scheduler meta commands that disagree on their data size.
	ErrAmbiguousTarget = fmt.Errorf("%w: inconsistent scheduler meta sizes", ErrFormat)

	// ErrEntryCount indicates a live entry count larger than the allocated count.
	ErrEntryCount = fmt.Errorf("%w: entry count exceeds allocated count", ErrFormat)

	// ErrInvalidValue indicates a field outside its legal set of values.
	ErrInvalidValue = fmt.Errorf("%w: illegal field value", ErrFormat)

	// ErrTypeMismatch indicates an embedded type tag that disagrees with its outer discriminant.
	ErrTypeMismatch = fmt.Errorf("%w: type mismatch", ErrFormat)
)

var (
	// ErrUnknownTarget indicates that no supported game matches the file.
	ErrUnknownTarget = fmt.Errorf("%w: unknown target", ErrUnsupported)

	// ErrUnsupportedVersion indicates a structure that does not exist in the target version.
	ErrUnsupportedVersion = fmt.Errorf("%w: version", ErrUnsupported)

	// ErrUnsupportedOpcode indicates a command that cannot be written.
	ErrUnsupportedOpcode = fmt.Errorf("%w: opcode", ErrUnsupported)
)

var (
	// ErrTooManyItems indicates a collection or value too large for its on-disk field.
	ErrTooManyItems = fmt.Errorf("%w: too many items", ErrValidation)

	// ErrFieldLength indicates a fixed-size field holding the wrong number of elements.
	ErrFieldLength = fmt.Errorf("%w: wrong field length", ErrValidation)

	// ErrMissingField indicates a required nested value is nil.
	ErrMissingField = fmt.Errorf("%w: missing field", ErrValidation)

	// ErrFieldValue indicates a model field outside its legal set of values.
	ErrFieldValue = fmt.Errorf("%w: illegal field value", ErrValidation)

	// ErrAdvanceTooFar is the panic value raised when a buffer is advanced past
	// the region handed out by Span.
	ErrAdvanceTooFar = fmt.Errorf("%w: advanced past writable region", ErrValidation)
)

// PaddingError reports the first non-zero byte found in a padding region.
// Offset is absolute within the data handed to Parse.
type PaddingError struct {
	Offset int
	Value  byte
}

func (e *PaddingError) Error() string {
	return fmt.Sprintf("%s: found non-zero byte 0x%02x at offset %d", ErrNonZeroPadding, e.Value, e.Offset)
}

func (e *PaddingError) Unwrap() error { return ErrNonZeroPadding }
