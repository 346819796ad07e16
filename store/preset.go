package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/gradient"
)

var (
	// ErrPresetNotFound is returned when a named preset does not exist.
	ErrPresetNotFound = errors.New("store: preset not found")

	// ErrInvalidPreset is returned for preset data that cannot be decoded.
	ErrInvalidPreset = errors.New("store: invalid preset")
)

// presetVersion is written into every preset document.
const presetVersion = 1

type presetDoc struct {
	Version int                     `json:"version"`
	Name    string                  `json:"name,omitempty"`
	Config  gradient.GradientConfig `json:"config"`
}

// MarshalPreset encodes cfg as an indented JSON document. The frozen time
// is viewer state and is never written.
func MarshalPreset(name string, cfg gradient.GradientConfig) ([]byte, error) {
	b, err := json.MarshalIndent(presetDoc{Version: presetVersion, Name: name, Config: cfg}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: encode preset %q: %w", name, err)
	}
	return b, nil
}

// UnmarshalPreset decodes a document written by MarshalPreset. Fields
// missing from the document keep their DefaultConfig values, and the
// weights are normalised.
func UnmarshalPreset(data []byte) (name string, cfg gradient.GradientConfig, err error) {
	doc := presetDoc{Config: gradient.DefaultConfig()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", gradient.GradientConfig{}, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	if doc.Version > presetVersion {
		return "", gradient.GradientConfig{}, fmt.Errorf("%w: version %d is newer than %d", ErrInvalidPreset, doc.Version, presetVersion)
	}
	return doc.Name, doc.Config, nil
}

// SavePreset stores the current configuration under name, replacing any
// preset with that name.
func (s *Store) SavePreset(name string) {
	cfg := s.Snapshot()
	cfg.Animation.Frozen = gradient.Running
	s.mu.Lock()
	s.presets[name] = cfg
	s.mu.Unlock()
	gradient.Logger().Debug("preset saved", "name", name)
}

// LoadPreset replaces the current configuration with the named preset as
// one undoable edit.
func (s *Store) LoadPreset(name string) error {
	s.mu.Lock()
	cfg, ok := s.presets[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	s.Replace(cfg)
	return nil
}

// DeletePreset removes the named preset.
func (s *Store) DeletePreset(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[name]; !ok {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	delete(s.presets, name)
	return nil
}

// Presets returns the preset names in sorted order.
func (s *Store) Presets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExportPresets encodes every preset as a JSON array of preset documents,
// sorted by name.
func (s *Store) ExportPresets() ([]byte, error) {
	names := s.Presets()
	s.mu.Lock()
	docs := make([]presetDoc, 0, len(names))
	for _, name := range names {
		docs = append(docs, presetDoc{Version: presetVersion, Name: name, Config: s.presets[name]})
	}
	s.mu.Unlock()
	b, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: encode presets: %w", err)
	}
	return b, nil
}

// ImportPresets adds every preset in data, which must be in the format
// ExportPresets writes. Presets with existing names are replaced. It returns
// the number imported.
func (s *Store) ImportPresets(data []byte) (int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	decoded := make(map[string]gradient.GradientConfig, len(raw))
	for i, r := range raw {
		name, cfg, err := UnmarshalPreset(r)
		if err != nil {
			return 0, fmt.Errorf("preset %d: %w", i, err)
		}
		if name == "" {
			return 0, fmt.Errorf("%w: preset %d has no name", ErrInvalidPreset, i)
		}
		decoded[name] = cfg
	}
	s.mu.Lock()
	for name, cfg := range decoded {
		s.presets[name] = cfg
	}
	s.mu.Unlock()
	return len(decoded), nil
}
