package arghelper

import (
	"fmt"
	"sort"
)

// The reserved token that merges previously resolved Flags and Keyvals
// values into the running result.
const argImport = "argimport"

// Definition declares the parameters a function accepts.
type Definition struct {
	// Flags maps a flag-group name to its mutually exclusive flag names.
	// The first listed flag is the group's default.
	Flags map[string][]string

	// Keyvals maps a key name to its default value. Declared positional
	// parameter names should appear here so they have defaults.
	Keyvals map[string]any

	// Groups maps a group-alias name to the argument list spliced in
	// place of the alias token.
	Groups map[string][]any

	// Import lists definition fragments applied, in order, before
	// resolution. Each fragment may add flags, keyvals and groups.
	Import []func(*Definition)

	// ImportDefaults is an argument list processed before the caller's
	// explicit arguments, so explicit arguments win.
	ImportDefaults []any

	// Description is free text shown by WriteUsage.
	Description string
}

// clone copies the definition deeply enough that import fragments and
// resolution never touch the caller's maps or slices.
func (d Definition) clone() Definition {
	c := Definition{
		Description:    d.Description,
		Import:         append(([]func(*Definition))(nil), d.Import...),
		ImportDefaults: append([]any(nil), d.ImportDefaults...),
	}
	if d.Flags != nil {
		c.Flags = make(map[string][]string, len(d.Flags))
		for group, names := range d.Flags {
			c.Flags[group] = append([]string(nil), names...)
		}
	}
	if d.Keyvals != nil {
		c.Keyvals = make(map[string]any, len(d.Keyvals))
		for key, def := range d.Keyvals {
			c.Keyvals[key] = def
		}
	}
	if d.Groups != nil {
		c.Groups = make(map[string][]any, len(d.Groups))
		for alias, expansion := range d.Groups {
			c.Groups[alias] = append([]any(nil), expansion...)
		}
	}
	return c
}

// expanded applies the import fragments to a private copy. Fragments added
// by other fragments are not re-applied; only the declared list runs.
func (d Definition) expanded(caller string) (Definition, error) {
	c := d.clone()
	imports := c.Import
	c.Import = nil
	for i, imp := range imports {
		if imp == nil {
			return Definition{}, DefinitionError{Caller: caller, Reason: fmt.Sprintf("import fragment %d is nil", i)}
		}
		imp(&c)
	}
	if c.Flags == nil {
		c.Flags = make(map[string][]string)
	}
	if c.Keyvals == nil {
		c.Keyvals = make(map[string]any)
	}
	if c.Groups == nil {
		c.Groups = make(map[string][]any)
	}
	if err := c.validate(caller); err != nil {
		return Definition{}, err
	}
	return c, nil
}

// validate enforces the naming invariants: flag, key and alias names are
// pairwise disjoint, "argimport" stays reserved, every flag group has at
// least one flag, and alias expansions do not cycle. Names are checked in
// sorted order so a broken definition always reports the same error.
func (d Definition) validate(caller string) error {
	fail := func(format string, a ...any) error {
		return DefinitionError{Caller: caller, Reason: fmt.Sprintf(format, a...)}
	}

	owner := make(map[string]string) // name -> "flag"/"key"/"alias"
	claim := func(name, kind string) error {
		if name == argImport {
			return fail("%s %q collides with the reserved argimport token", kind, name)
		}
		if prev, ok := owner[name]; ok {
			return fail("%s %q collides with a declared %s", kind, name, prev)
		}
		owner[name] = kind
		return nil
	}

	for _, group := range sortedKeys(d.Flags) {
		if len(d.Flags[group]) == 0 {
			return fail("flag group %q has no flags", group)
		}
		for _, name := range d.Flags[group] {
			if err := claim(name, "flag"); err != nil {
				return err
			}
		}
	}
	for _, key := range sortedKeys(d.Keyvals) {
		if err := claim(key, "key"); err != nil {
			return err
		}
	}
	for _, alias := range sortedKeys(d.Groups) {
		if err := claim(alias, "group alias"); err != nil {
			return err
		}
	}
	return d.checkAliasCycles(caller)
}

// checkAliasCycles walks the alias-to-alias references. An alias whose
// expansion reaches itself would splice forever during resolution, so it is
// rejected up front.
func (d Definition) checkAliasCycles(caller string) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(d.Groups))
	var walk func(alias string) error
	walk = func(alias string) error {
		state[alias] = visiting
		for _, tok := range d.Groups[alias] {
			name, ok := tok.(string)
			if !ok {
				continue
			}
			if _, isAlias := d.Groups[name]; !isAlias {
				continue
			}
			switch state[name] {
			case visiting:
				return DefinitionError{Caller: caller, Reason: fmt.Sprintf("group alias cycle through %q", name)}
			case done:
				continue
			}
			if err := walk(name); err != nil {
				return err
			}
		}
		state[alias] = done
		return nil
	}
	for _, alias := range sortedKeys(d.Groups) {
		if state[alias] == done {
			continue
		}
		if err := walk(alias); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
