package mediatypes

import (
	"encoding/json"
	"strings"
)

// PersistedScheme is the wire prefix marking a reference that must be
// resolved through the durable binary store.
const PersistedScheme = "media://"

// RefKind distinguishes durable references from session-local fallbacks.
type RefKind int

const (
	// RefPersisted means the bytes live in the durable binary store.
	RefPersisted RefKind = iota
	// RefEphemeral means the bytes are only reachable through a
	// session-local playback path and are lost when the session ends.
	RefEphemeral
)

// Ref is a storage reference for an imported asset. A persisted ref carries
// the media id; an ephemeral ref carries a session-local playback path.
// The wire format is "media://<id>" for persisted refs and the raw path
// otherwise, so any string without the scheme is directly playable.
type Ref struct {
	Kind RefKind
	ID   string // media id, persisted refs only
	Path string // session playback path, ephemeral refs only
}

// PersistedRef builds a durable reference for a media id.
func PersistedRef(id string) Ref {
	return Ref{Kind: RefPersisted, ID: id}
}

// EphemeralRef builds a session-local fallback reference.
func EphemeralRef(path string) Ref {
	return Ref{Kind: RefEphemeral, Path: path}
}

// ParseRef decodes the wire form of a reference.
func ParseRef(s string) Ref {
	if id, ok := strings.CutPrefix(s, PersistedScheme); ok {
		return PersistedRef(id)
	}
	return EphemeralRef(s)
}

// IsPersisted reports whether the reference points into the durable store.
func (r Ref) IsPersisted() bool {
	return r.Kind == RefPersisted
}

// String returns the wire form of the reference.
func (r Ref) String() string {
	if r.Kind == RefPersisted {
		return PersistedScheme + r.ID
	}
	return r.Path
}

// MarshalJSON encodes the reference in its wire form.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the wire form of a reference.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRef(s)
	return nil
}
