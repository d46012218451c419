package editor

import (
	"sort"

	"ecoheat_dashboard/internal/models"
)

// ComputePatch classifies every pair touched during the edit session.
// A selected pair becomes an upsert; a deselected pair becomes a removal, but
// only when a persisted slot existed for it before the session began —
// deselecting a never-persisted pair must produce no network effect.
// No pair ever lands in both lists.
func ComputePatch(store *SlotStore, sel *SelectionModel) models.Patch {
	pending := sel.Pending()
	keys := make([]models.SlotKey, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DayID != keys[j].DayID {
			return keys[i].DayID < keys[j].DayID
		}
		return keys[i].HourID < keys[j].HourID
	})

	var patch models.Patch
	for _, k := range keys {
		p := pending[k]
		if p.Selected {
			patch.Upserts = append(patch.Upserts, p.Slot)
			continue
		}
		if _, persisted := store.Get(k.DayID, k.HourID); persisted {
			patch.Removals = append(patch.Removals, k)
		}
	}
	return patch
}

// MergeForSave derives the full slot list the backend's update_time_slots
// action expects: it replaces a schedule's whole slot set, so untouched
// persisted slots ride along, upserts override, and removals are left out.
func MergeForSave(store *SlotStore, patch models.Patch) []models.Slot {
	drop := make(map[models.SlotKey]bool, len(patch.Removals))
	for _, k := range patch.Removals {
		drop[k] = true
	}
	override := make(map[models.SlotKey]models.Slot, len(patch.Upserts))
	for _, s := range patch.Upserts {
		override[s.Key()] = s
	}

	out := make([]models.Slot, 0, store.Len()+len(patch.Upserts))
	for _, s := range store.Slots() {
		key := s.Key()
		if drop[key] {
			continue
		}
		if ov, ok := override[key]; ok {
			out = append(out, ov)
			delete(override, key)
			continue
		}
		out = append(out, s)
	}
	// New slots that had no persisted counterpart.
	rest := make([]models.Slot, 0, len(override))
	for _, s := range override {
		rest = append(rest, s)
	}
	sort.Slice(rest, func(i, j int) bool {
		if rest[i].DayID != rest[j].DayID {
			return rest[i].DayID < rest[j].DayID
		}
		return rest[i].HourID < rest[j].HourID
	})
	return append(out, rest...)
}
