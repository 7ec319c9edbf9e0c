package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingRootHeader is returned when a tileset is created without a root header.
	ErrMissingRootHeader = zerr.New("missing root tile header")

	// ErrMissingTileID is returned when a tile header has no id.
	ErrMissingTileID = zerr.New("tile header has no id")

	// ErrDuplicateTile is returned when a tile id is attached twice.
	ErrDuplicateTile = zerr.New("tile already materialized")

	// ErrHeaderIDMismatch is returned when a fetched header does not carry the requested id.
	ErrHeaderIDMismatch = zerr.New("fetched header id does not match requested child")

	// ErrHeaderFetchFailed is returned when a child header cannot be fetched.
	ErrHeaderFetchFailed = zerr.New("failed to fetch tile header")

	// ErrHeaderDecodeFailed is returned when a tile header cannot be decoded.
	ErrHeaderDecodeFailed = zerr.New("failed to decode tile header")

	// ErrInvalidBoundingVolume is returned when a header has no usable bounding volume.
	ErrInvalidBoundingVolume = zerr.New("invalid bounding volume")

	// ErrResourceReadFailed is returned when a dataset resource cannot be read.
	ErrResourceReadFailed = zerr.New("failed to read dataset resource")

	// ErrContentFetchFailed is returned when tile content cannot be fetched.
	ErrContentFetchFailed = zerr.New("failed to fetch tile content")

	// ErrInvariantViolation is returned when the traversal reaches a state its contract forbids.
	ErrInvariantViolation = zerr.New("traversal invariant violated")

	// ErrTraversalFailed is returned when a frame's traversal aborts on an invariant violation.
	ErrTraversalFailed = zerr.New("traversal failed")

	// ErrUnsupportedFormat is returned when a dataset format is unknown.
	ErrUnsupportedFormat = zerr.New("unsupported tileset format, expected '3dtiles' or 'i3s'")

	// ErrInvalidScreenSpaceError is returned when the refinement threshold is not positive.
	ErrInvalidScreenSpaceError = zerr.New("maximumScreenSpaceError must be positive")

	// ErrInvalidViewer is returned when the viewer projection is unusable.
	ErrInvalidViewer = zerr.New("viewer fieldOfView and screenHeight must be positive")

	// ErrInvalidLimit is returned when a cache or fetch limit is negative.
	ErrInvalidLimit = zerr.New("cache and fetch limits must not be negative")

	// ErrMissingSource is returned when the configuration names no dataset.
	ErrMissingSource = zerr.New("source basePath is required")

	// ErrNoFrames is returned when the configuration defines no camera frames.
	ErrNoFrames = zerr.New("no frames configured")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find tilestream.yaml")
)
