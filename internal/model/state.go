package model

// State is the full in-memory system state: every entity collection plus
// the two singletons, FrontPanel and Network (spec.md §3/§4.1). It is
// owned by exactly one application controller at a time, which mutates
// it in place under its own mutex and publishes a notification per
// change (see client/server controller code), mirroring the teacher's
// controller.State struct in internal/models/state.go.
type State struct {
	Sources          []Source
	Zones            []Zone
	Groups           []Group
	EqualizerPresets []EqualizerPreset
	Favorites        []Favorite
	FrontPanel       FrontPanel
	Network          Network
}

// FindSource returns a pointer to the source with the given identifier,
// or nil if none matches.
func (s *State) FindSource(id Identifier) *Source {
	for i := range s.Sources {
		if s.Sources[i].ID() == id {
			return &s.Sources[i]
		}
	}
	return nil
}

// FindZone returns a pointer to the zone with the given identifier, or
// nil if none matches.
func (s *State) FindZone(id Identifier) *Zone {
	for i := range s.Zones {
		if s.Zones[i].ID() == id {
			return &s.Zones[i]
		}
	}
	return nil
}

// FindGroup returns a pointer to the group with the given identifier, or
// nil if none matches.
func (s *State) FindGroup(id Identifier) *Group {
	for i := range s.Groups {
		if s.Groups[i].ID() == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// FindEqualizerPreset returns a pointer to the preset with the given
// identifier, or nil if none matches.
func (s *State) FindEqualizerPreset(id Identifier) *EqualizerPreset {
	for i := range s.EqualizerPresets {
		if s.EqualizerPresets[i].ID() == id {
			return &s.EqualizerPresets[i]
		}
	}
	return nil
}

// FindFavorite returns a pointer to the favorite with the given
// identifier, or nil if none matches.
func (s *State) FindFavorite(id Identifier) *Favorite {
	for i := range s.Favorites {
		if s.Favorites[i].ID() == id {
			return &s.Favorites[i]
		}
	}
	return nil
}

// DeepCopy returns an independent copy of the state. Controllers hand
// these copies out as snapshots (State() accessors, store saves) so that
// callers never share the slices of the live, mutex-guarded State
// (grounded in the teacher's controller.go State.Clone).
func (s *State) DeepCopy() State {
	cp := State{
		Sources:          append([]Source(nil), s.Sources...),
		Zones:            append([]Zone(nil), s.Zones...),
		Groups:           make([]Group, len(s.Groups)),
		EqualizerPresets: append([]EqualizerPreset(nil), s.EqualizerPresets...),
		Favorites:        append([]Favorite(nil), s.Favorites...),
		FrontPanel:       s.FrontPanel,
		Network:          s.Network,
	}
	for i, g := range s.Groups {
		ng := NewGroup(g.ID())
		for _, m := range g.Members() {
			ng.AddMember(m, Identifier(255))
		}
		if name, err := g.Name(); err == nil {
			ng.SetName(name)
		}
		ng.SetDerived(g.Derived())
		cp.Groups[i] = ng
	}
	return cp
}
