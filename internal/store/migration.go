package store

import (
	"log/slog"

	"github.com/openhlxgo/hlx/internal/model"
)

// repair fills in missing or out-of-range entity collections after
// loading a snapshot, grounded in the teacher's migrateState
// (internal/config/migration.go) — adapted from the teacher's
// int-indexed fields to HLX's Identifier/Limits model.
func repair(st *model.State, limits model.Limits) {
	def := model.DefaultState(limits)

	st.Sources = repairCollection(st.Sources, def.Sources, limits.SourcesMax, "source",
		func(s model.Source) model.Identifier { return s.ID() })

	st.Zones = repairCollection(st.Zones, def.Zones, limits.ZonesMax, "zone",
		func(z model.Zone) model.Identifier { return z.ID() })

	st.Groups = repairCollection(st.Groups, def.Groups, limits.GroupsMax, "group",
		func(g model.Group) model.Identifier { return g.ID() })

	st.Favorites = repairCollection(st.Favorites, def.Favorites, limits.FavoritesMax, "favorite",
		func(f model.Favorite) model.Identifier { return f.ID() })

	st.EqualizerPresets = repairCollection(st.EqualizerPresets, def.EqualizerPresets, limits.EqualizerPresetsMax, "equalizer preset",
		func(p model.EqualizerPreset) model.Identifier { return p.ID() })

	if st.Groups == nil {
		st.Groups = []model.Group{}
	}
}

// repairCollection ensures got has exactly max entries, indices 1..max,
// with any out-of-range or missing entry replaced by fallback's entry
// for that identifier (fallback is model.DefaultState's collection,
// already built in 1..max order). Mirrors the teacher's per-collection
// "validate and fix ID, pad to minimum count" passes in migrateState,
// generalized to one routine for every entity class instead of one
// hand-written loop per class.
func repairCollection[T any](got, fallback []T, max model.Identifier, label string, idOf func(T) model.Identifier) []T {
	byID := make(map[model.Identifier]T, len(got))
	for _, v := range got {
		id := idOf(v)
		if !id.IsValid(max) {
			slog.Warn("store: invalid identifier, dropping entry", "kind", label, "id", id)
			continue
		}
		byID[id] = v
	}

	out := make([]T, 0, max)
	for id := model.Identifier(1); id <= max; id++ {
		if v, ok := byID[id]; ok {
			out = append(out, v)
			continue
		}
		out = append(out, fallback[id-1])
	}
	return out
}
