package contracts

import (
	"bytes"
	"encoding/json"
)

// Metadata is an ordered set of string key/value pairs attached to a Field,
// mirroring the arrow.Metadata shape used throughout the example pack
// (github.com/apache/arrow/go/v17/arrow.Metadata, constructed via
// arrow.NewMetadata(keys, vals) in the teacher's connection.go). Keeping
// keys/vals as parallel slices (rather than a map) preserves insertion
// order, which a map cannot.
type Metadata struct {
	keys   []string
	values []string
}

// NewMetadata builds a Metadata from parallel key/value slices. Panics if
// the lengths differ — a programmer error, not a runtime condition.
func NewMetadata(keys, values []string) Metadata {
	if len(keys) != len(values) {
		panic("contracts: metadata keys and values must have equal length")
	}
	return Metadata{keys: keys, values: values}
}

// Len returns the number of key/value pairs.
func (m Metadata) Len() int { return len(m.keys) }

// Keys returns the metadata keys in insertion order.
func (m Metadata) Keys() []string { return m.keys }

// Values returns the metadata values in insertion order, aligned with Keys.
func (m Metadata) Values() []string { return m.values }

// Get looks up a value by key.
func (m Metadata) Get(key string) (string, bool) {
	for i, k := range m.keys {
		if k == key {
			return m.values[i], true
		}
	}
	return "", false
}

// MarshalJSON renders metadata as a JSON object, exercising encoding/json
// the way the teacher's IndexInfo/QueryConfig types do. A bytes.Buffer
// builds the object manually so insertion order survives the round trip,
// which json.Marshal on a map would not guarantee.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(m.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a Metadata from the object produced by MarshalJSON.
// Go's encoding/json does not preserve object key order on decode into a
// map, so ordering is not round-tripped; callers that need stable ordering
// should carry Keys()/Values() alongside any JSON transport.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	raw := map[string]string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	keys := make([]string, 0, len(raw))
	values := make([]string, 0, len(raw))
	for k, v := range raw {
		keys = append(keys, k)
		values = append(values, v)
	}
	m.keys = keys
	m.values = values
	return nil
}
