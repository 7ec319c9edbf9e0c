package domain

import "strings"

// Refinement is how a tile's content combines with its descendants' content.
type Refinement string

const (
	// RefineAdd renders a tile together with its rendered descendants.
	RefineAdd Refinement = "ADD"
	// RefineReplace renders either the tile or its descendants, never both.
	RefineReplace Refinement = "REPLACE"
)

// String returns the refinement name.
func (r Refinement) String() string {
	return string(r)
}

// ParseRefinement normalizes a refinement name. It returns "" when the value is unknown.
func ParseRefinement(value string) Refinement {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ADD":
		return RefineAdd
	case "REPLACE":
		return RefineReplace
	default:
		return ""
	}
}

// ContentState is the load state of a tile's payload.
type ContentState uint8

const (
	// ContentEmpty means the tile has no renderable payload.
	ContentEmpty ContentState = iota
	// ContentUnloaded means the payload exists remotely and was never fetched.
	ContentUnloaded
	// ContentLoading means a fetch for the payload is in flight.
	ContentLoading
	// ContentAvailable means the payload is loaded.
	ContentAvailable
	// ContentExpired means the payload was loaded but its TTL lapsed.
	ContentExpired
)

var contentStateNames = [...]string{"empty", "unloaded", "loading", "available", "expired"}

// String returns the state name.
func (s ContentState) String() string {
	if int(s) < len(contentStateNames) {
		return contentStateNames[s]
	}
	return "unknown"
}

// Format identifies the dataset flavor a tileset was read from.
type Format string

const (
	// FormatTiles3D is a 3D Tiles tileset.json tree with inline children and
	// external tileset references.
	FormatTiles3D Format = "3dtiles"
	// FormatI3S is a flat node-id addressed tree fetched one node header at a time.
	FormatI3S Format = "i3s"
)
