package model

import "encoding/json"

// Source is one addressable audio input (spec.md §3/GLOSSARY).
type Source struct {
	id   Identifier
	name Nullable[string]
}

// NewSource constructs a source with its identifier set and name
// uninitialized, per spec.md §3's lifecycle rule.
func NewSource(id Identifier) Source { return Source{id: id} }

// ID returns the source identifier.
func (s Source) ID() Identifier { return s.id }

// Name returns the source name, or ErrNotInitialized.
func (s Source) Name() (string, error) { return s.name.Get() }

// SetName sets the source name, validated per ValidateName.
func (s *Source) SetName(name string) (SetOutcome, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	return s.name.Set(name), nil
}

func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   Identifier       `json:"id"`
		Name Nullable[string] `json:"name"`
	}{ID: s.id, Name: s.name})
}

func (s *Source) UnmarshalJSON(data []byte) error {
	var w struct {
		ID   Identifier       `json:"id"`
		Name Nullable[string] `json:"name"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.id, s.name = w.ID, w.Name
	return nil
}
