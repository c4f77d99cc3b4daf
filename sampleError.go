package framestat

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrCapabilityUnavailable is returned by a Surface that exposes no
	// diagnostic capability. The sampler skips to the next surface.
	ErrCapabilityUnavailable = errors.New("framestat: capability unavailable")
	// ErrNoSurfaces marks a reporting window that found no registered surfaces.
	// It is only ever logged.
	ErrNoSurfaces = errors.New("framestat: no surfaces registered")
)

// SampleError is produced when some part of the sampler fails.
type SampleError struct {
	Inner       error
	Message     string
	StackTrace  string
	ErrorSource TokenSource
	Misc        map[string]interface{}
}

func wrapSampleError(err error, source TokenSource, messagef string, msgArgs ...interface{}) SampleError {
	return SampleError{
		Inner:       err,
		Message:     fmt.Sprintf(messagef, msgArgs...),
		StackTrace:  string(debug.Stack()),
		ErrorSource: source,
		Misc:        make(map[string]interface{}),
	}
}

// recoveredError turns a recovered panic value into a SampleError.
func recoveredError(r interface{}, source TokenSource) SampleError {
	inner, ok := r.(error)
	if !ok {
		inner = fmt.Errorf("%v", r)
	}
	return wrapSampleError(inner, source, "recovered %s panic: %v", source, r)
}

func (e SampleError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error, if any.
func (e SampleError) Unwrap() error {
	return e.Inner
}
