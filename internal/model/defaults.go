package model

// DefaultState constructs a freshly-provisioned State: every entity
// collection populated up to limits with uninitialized properties except
// for the equalizer presets' fixed frequency ladder and default names
// (spec.md §3: "identifiers pre-exist; the properties they carry do
// not"). Grounded in the teacher's controller.go NewDefaultState, which
// pre-populates the fixed-size zone/source/group arrays the same way.
func DefaultState(limits Limits) State {
	st := State{
		Sources:          make([]Source, 0, limits.SourcesMax),
		Zones:            make([]Zone, 0, limits.ZonesMax),
		Groups:           make([]Group, 0, limits.GroupsMax),
		EqualizerPresets: NewDefaultEqualizerPresets(limits.EqualizerPresetsMax),
		Favorites:        make([]Favorite, 0, limits.FavoritesMax),
	}
	for i := Identifier(1); i <= limits.SourcesMax; i++ {
		st.Sources = append(st.Sources, NewSource(i))
	}
	for i := Identifier(1); i <= limits.ZonesMax; i++ {
		st.Zones = append(st.Zones, NewZone(i))
	}
	for i := Identifier(1); i <= limits.GroupsMax; i++ {
		st.Groups = append(st.Groups, NewGroup(i))
	}
	for i := Identifier(1); i <= limits.FavoritesMax; i++ {
		st.Favorites = append(st.Favorites, NewFavorite(i))
	}
	return st
}
