package model

// DerivedState is a group's derived volume/mute/source triple, computed
// from its member zones (spec.md §3's "critical invariant"). SourceID is
// nil when the members do not share a single source ("mixed").
type DerivedState struct {
	Volume   int
	Mute     bool
	SourceID *Identifier // nil == mixed / undefined
	Defined  bool        // false for an empty group (spec.md: "undefined derived state")
}

// DeriveGroup computes a group's derived state from a snapshot of its
// member zones' volume/mute/source. Grounded in the teacher's
// controller/groups.go updateGroupAggregates, generalized to the exact
// rounding rule spec.md §3 requires (half-away-from-zero, not truncating
// integer division as the teacher does).
//
// zones must contain exactly the group's current members; a zone id with
// no entry is skipped (mirrors the teacher tolerating dangling member ids
// after a zone is removed from the system).
func DeriveGroup(members []Identifier, zoneVolume map[Identifier]int, zoneMute map[Identifier]bool, zoneSource map[Identifier]Identifier) DerivedState {
	if len(members) == 0 {
		return DerivedState{Defined: false}
	}

	var (
		total      int
		count      int
		allMuted   = true
		haveSource bool
		mixed      bool
		source     Identifier
	)

	for _, zid := range members {
		vol, ok := zoneVolume[zid]
		if !ok {
			continue
		}
		total += vol
		count++

		if !zoneMute[zid] {
			allMuted = false
		}

		src := zoneSource[zid]
		if !haveSource {
			source = src
			haveSource = true
		} else if source != src {
			mixed = true
		}
	}

	if count == 0 {
		return DerivedState{Defined: false}
	}

	derived := DerivedState{
		Volume:  roundHalfAwayFromZero(total, count),
		Mute:    allMuted,
		Defined: true,
	}
	if haveSource && !mixed {
		s := source
		derived.SourceID = &s
	}
	return derived
}

// roundHalfAwayFromZero computes round(sum/count) with ties rounding away
// from zero, per spec.md §3 ("rounded half-away-from-zero") rather than
// Go's truncating integer division (which the teacher's updateGroupAggregates
// uses and which silently rounds toward zero instead).
func roundHalfAwayFromZero(sum, count int) int {
	if count == 0 {
		return 0
	}
	neg := (sum < 0) != (count < 0)
	if sum < 0 {
		sum = -sum
	}
	if count < 0 {
		count = -count
	}
	quot := sum / count
	rem := sum % count
	if 2*rem >= count {
		quot++
	}
	if neg {
		quot = -quot
	}
	return quot
}
