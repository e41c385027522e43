package model

import "encoding/json"

// Group is a logical aggregation of zones that fans mutations out to its
// members and derives read-back state from them (spec.md §3/GLOSSARY).
type Group struct {
	id      Identifier
	name    Nullable[string]
	members map[Identifier]struct{}

	// derived is the cached result of the last DeriveGroup call. It is
	// recomputed by the owning application controller after every
	// mutation that fans out to a member zone (spec.md §3: "after
	// fan-out the controller recomputes the derived triple"); Group
	// itself never recomputes it, since Group has no access to the
	// zone collection it would need (ownership rule, spec.md §3).
	derived DerivedState
}

// NewGroup constructs a group with its identifier set, an empty member
// set, and name uninitialized.
func NewGroup(id Identifier) Group {
	return Group{id: id, members: make(map[Identifier]struct{})}
}

// ID returns the group identifier.
func (g Group) ID() Identifier { return g.id }

// Name returns the group name, or ErrNotInitialized.
func (g Group) Name() (string, error) { return g.name.Get() }

// SetName sets the group name, validated per ValidateName.
func (g *Group) SetName(name string) (SetOutcome, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	return g.name.Set(name), nil
}

// Members returns the group's member zone identifiers in ascending order.
func (g Group) Members() []Identifier {
	out := make([]Identifier, 0, len(g.members))
	for id := range g.members {
		out = append(out, id)
	}
	sortIdentifiers(out)
	return out
}

// IsEmpty reports whether the group has no members.
func (g Group) IsEmpty() bool { return len(g.members) == 0 }

// HasMember reports whether id is a member of the group.
func (g Group) HasMember(id Identifier) bool {
	_, ok := g.members[id]
	return ok
}

// AddMember adds a zone to the group's membership. Returns Changed unless
// the zone was already a member.
func (g *Group) AddMember(id Identifier, zonesMax Identifier) (SetOutcome, error) {
	if err := ValidateIdentifier(id, zonesMax, "zoneID"); err != nil {
		return 0, err
	}
	if g.members == nil {
		g.members = make(map[Identifier]struct{})
	}
	if _, ok := g.members[id]; ok {
		return AlreadySet, nil
	}
	g.members[id] = struct{}{}
	return Changed, nil
}

// RemoveMember removes a zone from the group's membership. Returns
// Changed unless the zone was not a member.
func (g *Group) RemoveMember(id Identifier) SetOutcome {
	if _, ok := g.members[id]; !ok {
		return AlreadySet
	}
	delete(g.members, id)
	return Changed
}

// Derived returns the cached derived volume/mute/source triple.
func (g Group) Derived() DerivedState { return g.derived }

// SetDerived stores the result of DeriveGroup. Called only by the owning
// application controller after a fan-out mutation (spec.md §3).
func (g *Group) SetDerived(d DerivedState) { g.derived = d }

func (g Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      Identifier       `json:"id"`
		Name    Nullable[string] `json:"name"`
		Members []Identifier     `json:"members"`
		Derived DerivedState     `json:"derived"`
	}{ID: g.id, Name: g.name, Members: g.Members(), Derived: g.derived})
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var w struct {
		ID      Identifier       `json:"id"`
		Name    Nullable[string] `json:"name"`
		Members []Identifier     `json:"members"`
		Derived DerivedState     `json:"derived"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g.id, g.name, g.derived = w.ID, w.Name, w.Derived
	g.members = make(map[Identifier]struct{}, len(w.Members))
	for _, id := range w.Members {
		g.members[id] = struct{}{}
	}
	return nil
}

func sortIdentifiers(ids []Identifier) {
	// Insertion sort: group membership is small (≤ ZonesMax, typically
	// well under 64), so this avoids pulling in sort for a handful of
	// elements — matches the teacher's preference for small, obvious
	// loops over "import sort for 6 elements" (controller/zones.go's
	// fixed 6-element unit loops).
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
