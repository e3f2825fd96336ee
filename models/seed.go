package models

import "encoding/json"

// Seed points at one external profile file. Fields other than the three
// below survive a load/save cycle untouched.
type Seed struct {
	Filename string `json:"filename"`
	Artist   string `json:"artist"`
	Name     string `json:"name"`

	raw Object
}

func (s *Seed) UnmarshalJSON(data []byte) error {
	if err := s.raw.UnmarshalJSON(data); err != nil {
		return err
	}
	if s.raw.IsNull() {
		return ErrNotAnObject
	}

	// keys match exactly; "Filename" or "FILENAME" are unknown fields
	for _, f := range []struct {
		key   string
		value *string
	}{
		{"filename", &s.Filename},
		{"artist", &s.Artist},
		{"name", &s.Name},
	} {
		value, _, err := s.raw.String(f.key)
		if err != nil {
			return err
		}
		*f.value = value
	}
	return nil
}

func (s Seed) MarshalJSON() ([]byte, error) {
	out := s.raw.clone()
	out.null = false
	for _, f := range []struct {
		key   string
		value string
	}{
		{"filename", s.Filename},
		{"artist", s.Artist},
		{"name", s.Name},
	} {
		if current, ok := out.Get(f.key); ok {
			if sameString(current, f.value) {
				continue
			}
		} else if f.value == "" {
			continue
		}
		if err := out.SetValue(f.key, f.value); err != nil {
			return nil, err
		}
	}
	return out.MarshalJSON()
}

// sameString reports whether raw already encodes value. A JSON null counts
// as the empty string.
func sameString(raw json.RawMessage, value string) bool {
	var prev *string
	if err := json.Unmarshal(raw, &prev); err != nil {
		return false
	}
	if prev == nil {
		return value == ""
	}
	return *prev == value
}
