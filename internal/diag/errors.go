package diag

import "errors"

// Construction errors. When New returns one of these, no Diagnostic value
// exists; a malformed instance is never produced.
var (
	ErrInvalidSeverity = errors.New("severity outside the defined values")
	ErrMissingLocation = errors.New("diagnostic has no primary location")
)

// Render-time errors. They are local to a single Message or Render call
// and never affect previously produced output.
var (
	ErrUnknownReason    = errors.New("no template registered for reason")
	ErrMissingArgument  = errors.New("template placeholder has no argument")
	ErrBufferResolution = errors.New("buffer cannot resolve requested position")
)
