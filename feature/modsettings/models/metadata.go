package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// OverrideMarker is the placeholder value every field of the override sentinel carries.
const OverrideMarker = "Override_Mod"

// Attribute type tags used by the game's LSX format.
const (
	TypeLSString    = "LSString"
	TypeFixedString = "FixedString"
	TypeInt32       = "int32"
	TypeInt64       = "int64"
	TypeUint64      = "uint64"
)

// TypedValue is a descriptor attribute value and the type tag it was declared with.
// It encodes to a bare JSON string when Type is empty and to {"value","type"} otherwise.
type TypedValue struct {
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Typed returns a TypedValue carrying both value and tag.
func Typed(value, typ string) TypedValue {
	return TypedValue{Value: value, Type: typ}
}

// Plain returns an untagged TypedValue.
func Plain(value string) TypedValue {
	return TypedValue{Value: value}
}

// IsZero reports whether the value is empty.
func (v TypedValue) IsZero() bool {
	return v.Value == ""
}

// TypeOr returns the declared type tag, or fallback when none was recorded.
func (v TypedValue) TypeOr(fallback string) string {
	if v.Type == "" {
		return fallback
	}
	return v.Type
}

// MarshalJSON implements json.Marshaler.
func (v TypedValue) MarshalJSON() ([]byte, error) {
	if v.Type == "" {
		return json.Marshal(v.Value)
	}
	type plain TypedValue
	return json.Marshal(plain(v))
}

// UnmarshalJSON implements json.Unmarshaler. It accepts a bare string, null, or an object.
func (v *TypedValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = TypedValue{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TypedValue{Value: s}
		return nil
	case len(data) > 0 && data[0] == '{':
		type plain TypedValue
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*v = TypedValue(p)
		return nil
	default:
		return fmt.Errorf("typed value: unexpected JSON %s", string(data))
	}
}

// ArchiveMetadata is the cached identity of one archive, keyed in the cache by archive filename.
type ArchiveMetadata struct {
	Folder        TypedValue `json:"Folder"`
	Name          TypedValue `json:"Name"`
	UUID          TypedValue `json:"UUID"`
	Version       TypedValue `json:"Version,omitzero"`
	Version64     TypedValue `json:"Version64,omitzero"`
	MD5           TypedValue `json:"MD5"`
	PublishHandle TypedValue `json:"PublishHandle,omitzero"`

	// ModNames is the set of mods currently known to package this archive.
	ModNames []string `json:"ModName"`
}

// OverrideMetadata returns the sentinel record for an archive whose metadata is unavailable.
func OverrideMetadata() ArchiveMetadata {
	marker := Plain(OverrideMarker)
	return ArchiveMetadata{
		Folder:        marker,
		Name:          marker,
		UUID:          marker,
		Version:       marker,
		Version64:     marker,
		MD5:           marker,
		PublishHandle: marker,
	}
}

// IsOverride reports whether m is the override sentinel.
func (m ArchiveMetadata) IsOverride() bool {
	return m.UUID.Value == OverrideMarker
}

// HasMod reports whether modName references this archive.
func (m ArchiveMetadata) HasMod(modName string) bool {
	return slices.Contains(m.ModNames, modName)
}

// AddMod adds modName to the reference set. It returns false when the name was already present.
func (m *ArchiveMetadata) AddMod(modName string) bool {
	if m.HasMod(modName) {
		return false
	}
	m.ModNames = append(m.ModNames, modName)
	return true
}

// RemoveMod removes modName from the reference set. It returns false when the name was absent.
func (m *ArchiveMetadata) RemoveMod(modName string) bool {
	i := slices.Index(m.ModNames, modName)
	if i < 0 {
		return false
	}
	m.ModNames = slices.Delete(m.ModNames, i, i+1)
	return true
}

// Referenced reports whether any mod still packages this archive.
func (m ArchiveMetadata) Referenced() bool {
	return len(m.ModNames) > 0
}

// SameVersion reports whether both version fields match other's.
func (m ArchiveMetadata) SameVersion(other ArchiveMetadata) bool {
	return m.Version == other.Version && m.Version64 == other.Version64
}

// WithVersionOf returns a copy of m carrying other's version fields.
func (m ArchiveMetadata) WithVersionOf(other ArchiveMetadata) ArchiveMetadata {
	m.Version = other.Version
	m.Version64 = other.Version64
	return m
}

// Clone returns a deep copy of m.
func (m ArchiveMetadata) Clone() ArchiveMetadata {
	m.ModNames = slices.Clone(m.ModNames)
	return m
}
