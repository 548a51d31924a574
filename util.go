package efx

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Roundup rounds n up to the nearest multiple of align. align must be a power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// CheckZeros returns a *PaddingError for the first non-zero byte in b.
// base is added to the reported offset.
func CheckZeros(b []byte, base int) error {
	for i, c := range b {
		if c != 0 {
			return &PaddingError{Offset: base + i, Value: c}
		}
	}
	return nil
}

// checkCount reports whether n items fit in a count field that holds at most limit.
func checkCount(field string, n, limit int) error {
	if n > limit {
		return fmt.Errorf("%w: %s has %d items, limit is %d", ErrTooManyItems, field, n, limit)
	}
	return nil
}

func checkLength(field string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s has %d elements, want %d", ErrFieldLength, field, got, want)
	}
	return nil
}
