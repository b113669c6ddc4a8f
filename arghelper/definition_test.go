package arghelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinitionValidation(t *testing.T) {
	for _, _case := range []struct {
		reason string
		def    Definition
	}{
		{
			`flag "nodata" collides with a declared flag`,
			Definition{Flags: map[string][]string{
				"type":  {"data", "nodata"},
				"other": {"nodata"},
			}},
		},
		{
			`key "data" collides with a declared flag`,
			Definition{
				Flags:   map[string][]string{"type": {"data", "nodata"}},
				Keyvals: map[string]any{"data": 0},
			},
		},
		{
			`group alias "verbose" collides with a declared key`,
			Definition{
				Keyvals: map[string]any{"verbose": 0},
				Groups:  map[string][]any{"verbose": {"data"}},
			},
		},
		{
			`key "argimport" collides with the reserved argimport token`,
			Definition{Keyvals: map[string]any{"argimport": 0}},
		},
		{
			`flag group "type" has no flags`,
			Definition{Flags: map[string][]string{"type": {}}},
		},
		{
			"import fragment 0 is nil",
			Definition{Import: []func(*Definition){nil}},
		},
	} {
		_, err := Parse(nil, _case.def, nil)
		assert.EqualValues(t, DefinitionError{Reason: _case.reason}, err, "%v", _case.def)
	}
}

func TestAliasCycle(t *testing.T) {
	// Self-reference.
	_, err := Parse(nil, Definition{
		Groups: map[string][]any{"a": {"a"}},
	}, nil)
	assert.EqualValues(t, DefinitionError{Reason: `group alias cycle through "a"`}, err)

	// Two-step cycle.
	_, err = Parse(nil, Definition{
		Groups: map[string][]any{"a": {"b"}, "b": {"a"}},
	}, nil)
	assert.EqualValues(t, DefinitionError{Reason: `group alias cycle through "a"`}, err)

	// A diamond is not a cycle.
	_, err = Parse(nil, Definition{
		Flags:  map[string][]string{"type": {"data", "nodata"}},
		Groups: map[string][]any{"a": {"b", "c"}, "b": {"d"}, "c": {"d"}, "d": {"nodata"}},
	}, nil)
	assert.NoError(t, err)
}

func TestDefinitionCloneIsolation(t *testing.T) {
	def := Definition{
		Flags:   map[string][]string{"type": {"data", "nodata"}},
		Keyvals: map[string]any{"verbose": 0},
	}
	_, err := Parse(nil, def, []any{"verbose", 5})
	assert.NoError(t, err)
	assert.EqualValues(t, 0, def.Keyvals["verbose"])
}
