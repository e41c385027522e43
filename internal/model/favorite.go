package model

import "encoding/json"

// Favorite is a named, saved system-state shortcut (spec.md §3).
type Favorite struct {
	id   Identifier
	name Nullable[string]
}

// NewFavorite constructs a favorite with its identifier set and name
// uninitialized.
func NewFavorite(id Identifier) Favorite { return Favorite{id: id} }

// ID returns the favorite identifier.
func (f Favorite) ID() Identifier { return f.id }

// Name returns the favorite name, or ErrNotInitialized.
func (f Favorite) Name() (string, error) { return f.name.Get() }

// SetName sets the favorite name, validated per ValidateName.
func (f *Favorite) SetName(name string) (SetOutcome, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	return f.name.Set(name), nil
}

func (f Favorite) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   Identifier       `json:"id"`
		Name Nullable[string] `json:"name"`
	}{ID: f.id, Name: f.name})
}

func (f *Favorite) UnmarshalJSON(data []byte) error {
	var w struct {
		ID   Identifier       `json:"id"`
		Name Nullable[string] `json:"name"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	f.id, f.name = w.ID, w.Name
	return nil
}
