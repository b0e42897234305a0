// Package errs defines the sentinel errors shared by all trapdc packages.
//
// Call sites wrap these errors with additional context using fmt.Errorf and the %w verb,
// so callers should always test for them with errors.Is:
//
//	pt, err := solutions.FindFlatPoint(slice, nil)
//	if errors.Is(err, errs.ErrRootNotFound) {
//	    // retry with a different initial guess
//	}
package errs

import "errors"

// Shape and index errors.
var (
	// ErrInvalidShape is returned when a shape is empty or has a non-positive dimension.
	ErrInvalidShape = errors.New("invalid shape")
	// ErrIndexOutOfRange is returned when a flat index or multi-index falls outside its shape.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrShapeMismatch is returned when two operands (or data and fitter) disagree on shape.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Fitting and solving errors.
var (
	// ErrDegenerateFit is returned when a grid axis is not strictly larger than the
	// requested polynomial order on that axis.
	ErrDegenerateFit = errors.New("degenerate fit: grid size must exceed polynomial order")
	// ErrRootNotFound is returned when the zero-gradient solver does not converge.
	ErrRootNotFound = errors.New("root not found")
	// ErrInvalidOption is returned when a functional option receives an unusable value.
	ErrInvalidOption = errors.New("invalid option")
)

// Archive errors.
var (
	// ErrInvalidHeaderSize is returned when an archive is shorter than its fixed header.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidMagicNumber is returned when an archive header carries an unknown magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	// ErrUnsupportedKind is returned when an archive holds a different payload kind than requested.
	ErrUnsupportedKind = errors.New("unsupported archive kind")
	// ErrInvalidPayload is returned when the payload length disagrees with the header.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrChecksumMismatch is returned when the decoded payload fails checksum verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)
