package domain

import "unique"

// TileID is the stable, interned identity of a tile.
type TileID struct {
	h unique.Handle[string]
}

// NewTileID creates a TileID from a string.
func NewTileID(s string) TileID {
	return TileID{h: unique.Make(s)}
}

// NewTileIDs creates a TileID slice from a string slice.
func NewTileIDs(s []string) []TileID {
	res := make([]TileID, len(s))
	for i, s := range s {
		res[i] = NewTileID(s)
	}
	return res
}

// String returns the underlying string value.
func (id TileID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether the id was never set.
func (id TileID) IsZero() bool {
	return id == TileID{}
}

// MarshalText implements encoding.TextMarshaler.
func (id TileID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TileID) UnmarshalText(text []byte) error {
	id.h = unique.Make(string(text))
	return nil
}
