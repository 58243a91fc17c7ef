package champselect

import "strings"

// PreferenceList is an ordered list of champion names with duplicates
// removed, first occurrence winning. Lists are immutable; the scan cursor
// lives in the resolver State.
type PreferenceList struct {
	names []string
}

// NewPreferenceList builds a list from raw config entries. Entries are kept
// verbatim for logging; deduplication compares case-insensitively.
func NewPreferenceList(names []string) PreferenceList {
	seen := make(map[string]bool, len(names))
	kept := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, name)
	}
	return PreferenceList{names: kept}
}

// Len returns the number of distinct entries.
func (l PreferenceList) Len() int { return len(l.names) }

// At returns the entry at position i. Callers keep i within [0, Len).
func (l PreferenceList) At(i int) string { return l.names[i] }

// Names returns a copy of the deduplicated entries in order.
func (l PreferenceList) Names() []string {
	return append([]string(nil), l.names...)
}
