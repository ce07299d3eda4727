package assistant

import "errors"

// ErrBackendUnavailable means the backend could not be reached at startup.
var ErrBackendUnavailable = errors.New("backend unavailable")

// ErrBackendCall wraps a failed chat request; the session stays usable.
var ErrBackendCall = errors.New("backend call failed")

// ErrPersistence wraps history, export and artifact write failures.
var ErrPersistence = errors.New("persistence failed")

var ErrClosed = errors.New("session closed")
