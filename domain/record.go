package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Record is one fetched entity instance: string keys in the order the source emitted them
type Record struct {
	keys   []string
	values map[string]interface{}
}

// NewRecord returns an empty record
func NewRecord() Record {
	return Record{values: map[string]interface{}{}}
}

// RecordFromMap builds a record from a plain map. Keys are sorted since maps carry no order.
func RecordFromMap(m map[string]interface{}) Record {
	r := NewRecord()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Set adds or replaces a value. New keys are appended.
func (r *Record) Set(key string, value interface{}) {
	if r.values == nil {
		r.values = map[string]interface{}{}
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns a copy of the keys in insertion order
func (r Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r Record) Len() int {
	return len(r.keys)
}

// Map returns the values as a plain map
func (r Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Equal reports structural equality, ignoring key order
func (r Record) Equal(other Record) bool {
	if r.Len() != other.Len() {
		return false
	}
	return reflect.DeepEqual(r.Map(), other.Map())
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshaling field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order. Numbers become int64 when exact, float64 otherwise.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	*r = NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding field %q: %w", key, err)
		}
		r.Set(key, NormalizeJSONValue(raw))
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// NormalizeJSONValue converts json.Number values (recursively) to int64 when exact, float64 otherwise
func NormalizeJSONValue(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]interface{}:
		for k, item := range val {
			val[k] = NormalizeJSONValue(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = NormalizeJSONValue(item)
		}
		return val
	default:
		return val
	}
}

// StoredRecord is a record as persisted in the sink
type StoredRecord struct {
	ID            int64  `json:"id"`
	Content       Record `json:"content"`
	IngestionDate string `json:"ingestion_date"`
	Source        string `json:"source"`
}
