package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSurfaceOutdated signals that the presentable surface no longer
	// matches its configuration (resize race, lost swapchain image). The
	// frame is skipped and the surface reconfigured; the next redraw
	// trigger retries.
	ErrSurfaceOutdated = errors.New("surface outdated, frame skipped")

	// ErrSurfaceLost signals that surface acquisition kept failing after
	// reconfiguration. This is not retried.
	ErrSurfaceLost = errors.New("surface repeatedly unavailable")

	// ErrNameNotInManifest signals a texture name with no manifest entry.
	// This is permanent: retrying the same name performs no I/O.
	ErrNameNotInManifest = errors.New("texture name not in manifest")
)

// IOError wraps a filesystem failure while reading an asset. The asset is
// not cached, so a later lookup retries the read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading asset %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError wraps a malformed or unsupported asset payload. Like IOError
// it leaves no cache entry behind.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding asset %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
