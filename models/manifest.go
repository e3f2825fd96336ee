package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ReservedKeys are top-level manifest keys that hold metadata rather than
// genres. They are written back untouched and never traversed.
var ReservedKeys = []string{"_meta", "_version"}

func IsReservedKey(key string) bool {
	return slices.Contains(ReservedKeys, key)
}

// Manifest is the whole genre constellation document.
type Manifest struct {
	doc    Object
	genres Genres
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	if err := m.doc.UnmarshalJSON(data); err != nil {
		return err
	}
	if m.doc.IsNull() {
		return ErrNotAnObject
	}

	m.genres = Genres{}
	for _, key := range m.doc.Keys() {
		if IsReservedKey(key) {
			continue
		}
		raw, _ := m.doc.Get(key)
		node := new(GenreNode)
		if err := json.Unmarshal(raw, node); err != nil {
			return fmt.Errorf("category %q: %w", key, err)
		}
		m.genres.Add(key, node)
	}
	return nil
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	out := m.doc.clone()
	out.null = false
	for _, name := range m.genres.Names() {
		node, _ := m.genres.Get(name)
		if err := out.SetValue(name, node); err != nil {
			return nil, err
		}
	}
	return out.MarshalJSON()
}

// Categories returns the top-level genre names in document order,
// reserved keys excluded.
func (m *Manifest) Categories() []string {
	return m.genres.Names()
}

func (m *Manifest) Category(name string) (*GenreNode, bool) {
	if IsReservedKey(name) {
		return nil, false
	}
	return m.genres.Get(name)
}

// Metadata returns the raw value stored under a reserved key.
func (m *Manifest) Metadata(key string) (json.RawMessage, bool) {
	if !IsReservedKey(key) {
		return nil, false
	}
	return m.doc.Get(key)
}
