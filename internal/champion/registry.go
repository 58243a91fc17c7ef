package champion

import "strings"

// ID is a champion's numeric identifier as used by the client APIs.
type ID int

// Registry resolves champion names to ids. Lookups are case-insensitive and
// accept both the Data Dragon key name ("MonkeyKing") and the display name
// ("Wukong"). The table is fixed for the lifetime of the process.
type Registry struct {
	table map[string]ID
	count int
}

// NewRegistry builds a registry from a name -> id table. Keys are normalized;
// the distinct id count is what Len reports.
func NewRegistry(table map[string]ID) *Registry {
	r := &Registry{table: make(map[string]ID, len(table))}
	seen := make(map[ID]struct{}, len(table))
	for name, id := range table {
		key := normalize(name)
		if key == "" {
			continue
		}
		r.table[key] = id
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			r.count++
		}
	}
	return r
}

// Lookup returns the id for a champion name.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.table[normalize(name)]
	return id, ok
}

// Len returns the number of distinct champions in the registry.
func (r *Registry) Len() int {
	return r.count
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
