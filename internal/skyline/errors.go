package skyline

import "errors"

// Geometry faults. They are clamped where they occur and only ever logged;
// painting always goes on.
var (
	// ErrInvalidGridDimension indicates a window count computed below the minimum of 2.
	ErrInvalidGridDimension = errors.New("skyline: window grid dimension below minimum")

	// ErrDivisionSingularity indicates a gap computed over a single row or column.
	ErrDivisionSingularity = errors.New("skyline: gap over a single window row or column")

	// ErrIndexOutOfRange indicates an index outside [0, length-1].
	ErrIndexOutOfRange = errors.New("skyline: index out of range")
)

// clampIndex bounds i to [0, n-1].
func clampIndex(i, n int) (int, error) {
	switch {
	case n <= 0:
		return 0, ErrIndexOutOfRange
	case i < 0:
		return 0, ErrIndexOutOfRange
	case i >= n:
		return n - 1, ErrIndexOutOfRange
	}
	return i, nil
}
