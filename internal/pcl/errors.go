package pcl

import (
	"errors"
	"fmt"
)

// Option resolution outcomes. Most are recorded as warnings on the Job;
// an unsupported media size is fatal on printers without custom sizes.
var (
	ErrUnknownModel           = errors.New("unknown printer model")
	ErrUnsupportedMediaSize   = errors.New("media size not supported")
	ErrUnsupportedMediaType   = errors.New("media type not supported")
	ErrUnsupportedMediaSource = errors.New("media source not supported")
	ErrUnsupportedResolution  = errors.New("resolution not supported")
	ErrResolutionDowngrade    = errors.New("output downgraded to grayscale")
	ErrUnsupportedInkType     = errors.New("ink type not supported")
	ErrJobNotResolved         = errors.New("print options not resolved")
)

// OptionError ties an option resolution outcome to the offending value.
type OptionError struct {
	Option string
	Value  string
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Option, e.Value, e.Err)
}

func (e *OptionError) Unwrap() error { return e.Err }

// RowError reports a source row that could not be read. The page it
// belongs to is still closed on the device.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("read source row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
