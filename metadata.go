package pinata

import (
	"encoding/json"
	"fmt"
)

// Metadata is the optional display name and key/value tags attached to
// pinned content. Both fields are independent; either may be empty.
type Metadata struct {
	Name      string                   `json:"name,omitempty"`
	KeyValues map[string]MetadataValue `json:"keyvalues,omitempty"`
}

type metadataKind int

const (
	metadataString metadataKind = iota
	metadataNumber
	metadataDelete
)

// MetadataValue is a single metadata value: a string, a number, or a delete
// marker. On the wire it is a JSON string, number, or null. The delete marker
// is only meaningful in ChangeHashMetadata requests, where it removes the key
// from the existing metadata.
type MetadataValue struct {
	kind metadataKind
	str  string
	num  float64
}

// MetadataString returns a string metadata value.
func MetadataString(s string) MetadataValue {
	return MetadataValue{kind: metadataString, str: s}
}

// MetadataNumber returns a numeric metadata value.
func MetadataNumber(n float64) MetadataValue {
	return MetadataValue{kind: metadataNumber, num: n}
}

// MetadataDelete returns the delete marker.
func MetadataDelete() MetadataValue {
	return MetadataValue{kind: metadataDelete}
}

// IsDelete reports whether the value is the delete marker.
func (v MetadataValue) IsDelete() bool { return v.kind == metadataDelete }

// Value returns the underlying value: a string, a float64, or nil for the
// delete marker.
func (v MetadataValue) Value() any {
	switch v.kind {
	case metadataNumber:
		return v.num
	case metadataDelete:
		return nil
	default:
		return v.str
	}
}

func (v MetadataValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case metadataNumber:
		return json.Marshal(v.num)
	case metadataDelete:
		return []byte("null"), nil
	default:
		return json.Marshal(v.str)
	}
}

func (v *MetadataValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = MetadataDelete()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = MetadataString(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = MetadataNumber(n)
		return nil
	}

	return fmt.Errorf("metadata value must be a string, number or null, got %s", data)
}
