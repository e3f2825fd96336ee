package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var ErrNotAnObject = errors.New("value is not a JSON object")

// Object is a JSON object that remembers the order of its keys.
// Values are kept raw until somebody asks for them.
type Object struct {
	fields *orderedmap.OrderedMap[string, json.RawMessage]
	null   bool
}

func (o *Object) UnmarshalJSON(data []byte) error {
	o.fields = orderedmap.New[string, json.RawMessage]()
	o.null = false

	null, err := checkObject(data)
	if err != nil {
		return err
	}
	if null {
		o.null = true
		return nil
	}

	// duplicate keys: last value wins, first position is kept
	return o.fields.UnmarshalJSON(data)
}

func (o Object) MarshalJSON() ([]byte, error) {
	if o.null && o.Len() == 0 {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	if o.fields != nil {
		for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
			if buf.Len() > 1 {
				buf.WriteByte(',')
			}
			name, err := marshalValue(pair.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			buf.Write(pair.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys returns the object keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	if o.fields == nil {
		return keys
	}
	for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

func (o *Object) Get(key string) (json.RawMessage, bool) {
	if o.fields == nil {
		return nil, false
	}
	return o.fields.Get(key)
}

// Set replaces the value of key, appending the key when it is new.
func (o *Object) Set(key string, value json.RawMessage) {
	if o.fields == nil {
		o.fields = orderedmap.New[string, json.RawMessage]()
	}
	o.fields.Set(key, value)
	o.null = false
}

// SetValue marshals v and stores it under key.
func (o *Object) SetValue(key string, v any) error {
	raw, err := marshalValue(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	o.Set(key, raw)
	return nil
}

func (o *Object) IsNull() bool {
	return o.null
}

func (o *Object) Len() int {
	if o.fields == nil {
		return 0
	}
	return o.fields.Len()
}

// String decodes the value of key as a string. A missing key or a JSON null
// gives "" and false for present.
func (o *Object) String(key string) (value string, present bool, err error) {
	raw, ok := o.Get(key)
	if !ok {
		return "", false, nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", true, fmt.Errorf("field %q: %w", key, err)
	}
	if s == nil {
		return "", true, nil
	}
	return *s, true, nil
}

func (o Object) clone() Object {
	c := Object{
		fields: orderedmap.New[string, json.RawMessage](orderedmap.WithCapacity[string, json.RawMessage](o.Len())),
		null:   o.null,
	}
	if o.fields != nil {
		for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
			c.fields.Set(pair.Key, pair.Value)
		}
	}
	return c
}

// checkObject reports whether data is a JSON null, and fails unless it is a
// null or an object.
func checkObject(data []byte) (null bool, err error) {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return true, nil
	case len(trimmed) == 0 || trimmed[0] != '{':
		return false, ErrNotAnObject
	}
	return false, nil
}

// marshalValue encodes v without escaping HTML characters, so genre names
// like "r&b" stay readable in the rewritten manifest.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
