package insight

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// DimensionScore is one named 1-10 rating attached to an insight.
type DimensionScore struct {
	Key   string
	Value float64
}

// ScoreMap is an open record of dimension scores. Unlike a Go map it
// preserves the document order of the upstream payload, which is the
// order renderers must emit badges in.
type ScoreMap []DimensionScore

// Get looks up a dimension by key.
func (m ScoreMap) Get(key string) (float64, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

// Keys returns the dimension names in insertion order.
func (m ScoreMap) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// UnmarshalJSON decodes a JSON object into an ordered ScoreMap.
// Non-numeric values are a shape violation and fail the decode.
func (m *ScoreMap) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return fmt.Errorf("enhanced scores must be a JSON object, got %s", parsed.Type)
	}
	var out ScoreMap
	var badKey string
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			badKey = key.String()
			return false
		}
		out = append(out, DimensionScore{Key: key.String(), Value: value.Float()})
		return true
	})
	if badKey != "" {
		return fmt.Errorf("dimension %q has a non-numeric score", badKey)
	}
	*m = out
	return nil
}

// MarshalJSON re-emits the scores as an object in insertion order.
func (m ScoreMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MetaKind tags the variant stored in a MetaValue.
type MetaKind int

const (
	MetaString MetaKind = iota
	MetaNumber
	MetaBool
	MetaMap
)

// MetaValue is a tagged value inside a raw signal's extra metadata.
// Access goes through the typed accessors; callers never cast blindly.
type MetaValue struct {
	Kind MetaKind
	str  string
	num  float64
	b    bool
	m    Metadata
}

func (v MetaValue) Text() (string, bool)    { return v.str, v.Kind == MetaString }
func (v MetaValue) Number() (float64, bool) { return v.num, v.Kind == MetaNumber }
func (v MetaValue) Bool() (bool, bool)      { return v.b, v.Kind == MetaBool }
func (v MetaValue) Map() (Metadata, bool)   { return v.m, v.Kind == MetaMap }

// Display renders any variant as a human-readable string.
func (v MetaValue) Display() string {
	switch v.Kind {
	case MetaString:
		return v.str
	case MetaNumber:
		return fmt.Sprintf("%g", v.num)
	case MetaBool:
		return fmt.Sprintf("%t", v.b)
	case MetaMap:
		out, _ := json.Marshal(v.m)
		return string(out)
	}
	return ""
}

// MetaEntry is one key/value pair of a metadata record.
type MetaEntry struct {
	Key   string
	Value MetaValue
}

// Metadata is the heterogeneous extra-metadata record carried by raw
// signals. The schema varies by source, so it is an ordered open record
// rather than a struct.
type Metadata []MetaEntry

// Get looks up an entry by key.
func (md Metadata) Get(key string) (MetaValue, bool) {
	for _, e := range md {
		if e.Key == key {
			return e.Value, true
		}
	}
	return MetaValue{}, false
}

// UnmarshalJSON decodes a JSON object into an ordered Metadata record.
// Arrays and nulls inside the payload are dropped; strings, numbers,
// booleans and nested objects are kept.
func (md *Metadata) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*md = nil
		return nil
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return fmt.Errorf("extra metadata must be a JSON object, got %s", parsed.Type)
	}
	*md = metadataFromResult(parsed)
	return nil
}

func metadataFromResult(obj gjson.Result) Metadata {
	var out Metadata
	obj.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.Type == gjson.String:
			out = append(out, MetaEntry{key.String(), MetaValue{Kind: MetaString, str: value.String()}})
		case value.Type == gjson.Number:
			out = append(out, MetaEntry{key.String(), MetaValue{Kind: MetaNumber, num: value.Float()}})
		case value.Type == gjson.True || value.Type == gjson.False:
			out = append(out, MetaEntry{key.String(), MetaValue{Kind: MetaBool, b: value.Bool()}})
		case value.IsObject():
			out = append(out, MetaEntry{key.String(), MetaValue{Kind: MetaMap, m: metadataFromResult(value)}})
		}
		return true
	})
	return out
}

// MarshalJSON re-emits the record as an object in insertion order.
func (md Metadata) MarshalJSON() ([]byte, error) {
	if md == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range md {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		switch e.Value.Kind {
		case MetaString:
			val, err := json.Marshal(e.Value.str)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		case MetaNumber:
			val, err := json.Marshal(e.Value.num)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		case MetaBool:
			fmt.Fprintf(&buf, "%t", e.Value.b)
		case MetaMap:
			val, err := e.Value.m.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
