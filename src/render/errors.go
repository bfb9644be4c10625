package render

import "github.com/go-faster/errors"

// Failure classes. All are fatal for the invocation; there is no degraded
// mode for a documentation chart, so nothing is retried.
var (
	// ErrInvalidThreshold marks a non-positive or non-finite threshold.
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrRenderBackend marks a go-chart or PNG codec failure, surfaced verbatim.
	ErrRenderBackend = errors.New("render backend failure")
	// ErrOutputWrite marks a failure writing the artifact, reported with the path.
	ErrOutputWrite = errors.New("output write failure")
)
