// Package types provides type definitions for structured data used throughout the jobready system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SkillLevel is a single skill with its proficiency level (1-5).
type SkillLevel struct {
	Name  string `json:"name" validate:"required"`
	Level int    `json:"level" validate:"min=1,max=5"`
}

// SkillLevels is an ordered skill -> level map. It serializes as a JSON object
// and keeps the key order of the source document.
type SkillLevels []SkillLevel

// Lookup returns the level for a skill name, compared case-insensitively.
// The second return value is false when the skill is absent; the level is then 0.
func (s SkillLevels) Lookup(name string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, sl := range s {
		if strings.ToLower(strings.TrimSpace(sl.Name)) == key {
			return sl.Level, true
		}
	}
	return 0, false
}

// Names returns the skill names in order.
func (s SkillLevels) Names() []string {
	names := make([]string, 0, len(s))
	for _, sl := range s {
		names = append(names, sl.Name)
	}
	return names
}

// MarshalJSON writes the skills as a JSON object in slice order.
func (s SkillLevels) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sl := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sl.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", sl.Level)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of skill -> level, preserving key order.
// A duplicate key overwrites the earlier level in place.
func (s *SkillLevels) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected JSON object, got %v", tok)
	}

	out := SkillLevels{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("skills: expected string key, got %v", tok)
		}
		var level int
		if err := dec.Decode(&level); err != nil {
			return fmt.Errorf("skills: level for %q: %w", name, err)
		}
		if i, seen := index[name]; seen {
			out[i].Level = level
			continue
		}
		index[name] = len(out)
		out = append(out, SkillLevel{Name: name, Level: level})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}
