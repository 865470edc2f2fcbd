package changeset

import (
	"sort"

	"shiny-tracker/models/entities"
)

type FieldChange struct {
	Field string
	Old   bool
	New   bool
}

type Change struct {
	Record entities.ShinyRecord
	Fields []FieldChange
}

type Summary struct {
	Added   []entities.ShinyRecord
	Changed []Change
}

func (summary *Summary) IsEmpty() bool {
	return len(summary.Added) == 0 && len(summary.Changed) == 0
}

type recordKey struct {
	source string
	dexID  int
}

// Compute compares a stored snapshot with a freshly fetched one. Records only
// present in fresh land in Added, records present on both sides with different
// method flags land in Changed. Records that disappeared from fresh are
// dropped silently. Both slices stay untouched.
func Compute(stored, fresh []entities.ShinyRecord) Summary {
	known := make(map[recordKey]entities.ShinyRecord, len(stored))
	for _, record := range stored {
		known[recordKey{source: record.Source, dexID: record.DexID}] = record
	}

	var summary Summary
	for _, record := range fresh {
		previous, found := known[recordKey{source: record.Source, dexID: record.DexID}]
		if !found {
			summary.Added = append(summary.Added, record)
			continue
		}

		if fields := compareMethods(previous, record); len(fields) > 0 {
			summary.Changed = append(summary.Changed, Change{Record: record, Fields: fields})
		}
	}

	sort.Slice(summary.Added, func(i, j int) bool {
		return summary.Added[i].DexID < summary.Added[j].DexID
	})
	sort.Slice(summary.Changed, func(i, j int) bool {
		return summary.Changed[i].Record.DexID < summary.Changed[j].Record.DexID
	})

	return summary
}

func compareMethods(previous, current entities.ShinyRecord) []FieldChange {
	var fields []FieldChange
	for _, method := range entities.AcquisitionMethods {
		before := previous.Obtainable(method)
		after := current.Obtainable(method)
		if before != after {
			fields = append(fields, FieldChange{Field: method, Old: before, New: after})
		}
	}

	return fields
}
