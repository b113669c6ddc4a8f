package arghelper

// Keyvals holds the resolved value for every declared key.
type Keyvals map[string]any

// Flags holds the resolved flag selections: one selected flag per group,
// plus an is-active indicator for every declared flag.
type Flags struct {
	selected map[string]string
	active   map[string]bool
}

// Selected returns the active flag of the given group, or "" for an
// unknown group.
func (f Flags) Selected(group string) string {
	return f.selected[group]
}

// Active reports whether the named flag is the active one in its group.
func (f Flags) Active(name string) bool {
	return f.active[name]
}

// Groups returns the group names in sorted order.
func (f Flags) Groups() []string {
	return sortedKeys(f.selected)
}

// Names returns every declared flag name in sorted order.
func (f Flags) Names() []string {
	return sortedKeys(f.active)
}

// merge copies every entry of other into f, later wins. Used by the
// argimport token to splice a previously resolved Flags into this one.
func (f Flags) merge(other Flags) {
	for group, sel := range other.selected {
		f.selected[group] = sel
	}
	for name, on := range other.active {
		f.active[name] = on
	}
}

// Result is a resolved argument list.
type Result struct {
	Flags   Flags
	Keyvals Keyvals

	// Pos holds the final values of the declared positional parameters,
	// in declared order.
	Pos []any
}
