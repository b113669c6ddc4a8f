package arghelper

import (
	"testing"

	"github.com/bradfitz/iter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleDef() Definition {
	return Definition{
		Flags:   map[string][]string{"type": {"data", "nodata"}},
		Keyvals: map[string]any{"Index": nil, "verbose": 0},
	}
}

func TestBasic(t *testing.T) {
	runCases(t, []string{"Index"}, exampleDef(), []resolveCase{
		noErrorCase(expectation{
			selected: map[string]string{"type": "nodata"},
			active:   map[string]bool{"nodata": true, "data": false},
			keyvals:  Keyvals{"Index": 5, "verbose": 1},
			pos:      []any{5},
		}, 5, "nodata", "verbose", 1),
		// Nothing given: group defaults and key defaults.
		noErrorCase(expectation{
			selected: map[string]string{"type": "data"},
			active:   map[string]bool{"data": true, "nodata": false},
			keyvals:  Keyvals{"Index": nil, "verbose": 0},
			pos:      []any{nil},
		}),
		// Positional value alone.
		noErrorCase(expectation{
			keyvals: Keyvals{"Index": 3, "verbose": 0},
			pos:     []any{3},
		}, 3),
		errorCase(UnknownParamError{Token: "bogus"}, "bogus"),
		errorCase(MissingValueError{Key: "verbose"}, "verbose"),
		errorCase(TooManyPositionalError{Declared: 1, Given: 2}, 1, 2, "nodata"),
	})
}

func TestLaterWins(t *testing.T) {
	runCases(t, nil, exampleDef(), []resolveCase{
		noErrorCase(expectation{
			selected: map[string]string{"type": "nodata"},
			active:   map[string]bool{"nodata": true, "data": false},
		}, "data", "nodata"),
		noErrorCase(expectation{
			selected: map[string]string{"type": "data"},
			active:   map[string]bool{"data": true, "nodata": false},
		}, "nodata", "data"),
		noErrorCase(expectation{
			keyvals: Keyvals{"verbose": 2},
		}, "verbose", 1, "verbose", 2),
	})
}

func TestTooManyPositional(t *testing.T) {
	// More leading non-strings than declared slots, more args than slots.
	_, err := Parse([]string{"Index"}, exampleDef(), []any{1, 2, 3})
	assert.EqualValues(t, TooManyPositionalError{Declared: 1, Given: 3}, err)
	// The caller name prefixes the message.
	_, err = Parse([]string{"Index"}, exampleDef(), []any{1, 2, 3}, Caller("SOFAload"))
	require.Error(t, err)
	assert.EqualValues(t, "SOFAload: too many positional arguments: 3 given, 1 declared", err.Error())
}

func TestNonStringInNamedStream(t *testing.T) {
	_, err := Parse(nil, exampleDef(), []any{"verbose", 1, 2})
	assert.EqualValues(t, UnknownParamError{Token: 2}, err)
}

func TestGroupAlias(t *testing.T) {
	def := exampleDef()
	def.Groups = map[string][]any{
		"quiet": {"nodata", "verbose", 0},
		"loud":  {"quiet", "verbose", 9},
	}
	runCases(t, nil, def, []resolveCase{
		noErrorCase(expectation{
			selected: map[string]string{"type": "nodata"},
			keyvals:  Keyvals{"verbose": 0},
		}, "quiet"),
		// Aliases may reference other aliases; the splice re-processes in
		// place, so tokens after the inner alias still win.
		noErrorCase(expectation{
			selected: map[string]string{"type": "nodata"},
			keyvals:  Keyvals{"verbose": 9},
		}, "loud"),
		// Explicit arguments after the alias override its expansion.
		noErrorCase(expectation{
			selected: map[string]string{"type": "data"},
			keyvals:  Keyvals{"verbose": 0},
		}, "quiet", "data"),
	})
}

func TestArgImport(t *testing.T) {
	def := exampleDef()
	base, err := Parse(nil, def, []any{"nodata", "verbose", 7})
	require.NoError(t, err)

	res, err := Parse(nil, def, []any{"argimport", base.Flags, base.Keyvals})
	require.NoError(t, err)
	assert.EqualValues(t, "nodata", res.Flags.Selected("type"))
	assert.True(t, res.Flags.Active("nodata"))
	assert.EqualValues(t, 7, res.Keyvals["verbose"])

	// Tokens after the import still win.
	res, err = Parse(nil, def, []any{"argimport", base.Flags, base.Keyvals, "data"})
	require.NoError(t, err)
	assert.EqualValues(t, "data", res.Flags.Selected("type"))

	runCases(t, nil, def, []resolveCase{
		errorCase(ArgImportError{Reason: "expects a Flags value and a Keyvals value"}, "argimport"),
		errorCase(ArgImportError{Reason: "expects a Flags value and a Keyvals value"}, "argimport", base.Flags),
		errorCase(ArgImportError{Reason: "first value is not a Flags"}, "argimport", 1, base.Keyvals),
		errorCase(ArgImportError{Reason: "second value is not a Keyvals"}, "argimport", base.Flags, 1),
	})
}

func TestImportFragments(t *testing.T) {
	withAmplitude := func(d *Definition) {
		d.Keyvals["amplitude"] = 1.0
		d.Flags["scale"] = []string{"lin", "log"}
	}
	def := exampleDef()
	def.Import = []func(*Definition){withAmplitude}

	res, err := Parse(nil, def, []any{"log", "amplitude", 0.5})
	require.NoError(t, err)
	assert.EqualValues(t, "log", res.Flags.Selected("scale"))
	assert.EqualValues(t, 0.5, res.Keyvals["amplitude"])
	// The caller's definition stays untouched.
	assert.NotContains(t, def.Keyvals, "amplitude")
}

func TestImportDefaults(t *testing.T) {
	def := exampleDef()
	def.ImportDefaults = []any{"nodata", "verbose", 3}
	runCases(t, nil, def, []resolveCase{
		noErrorCase(expectation{
			selected: map[string]string{"type": "nodata"},
			keyvals:  Keyvals{"verbose": 3},
		}),
		// Explicit arguments override import defaults.
		noErrorCase(expectation{
			selected: map[string]string{"type": "data"},
			keyvals:  Keyvals{"verbose": 1},
		}, "data", "verbose", 1),
	})
}

func TestStoreDefaults(t *testing.T) {
	store := NewStore()
	store.Set("SOFAplot", "nodata", "verbose", 2)
	def := exampleDef()
	opts := []ParseOpt{Caller("SOFAplot"), Defaults(store)}

	// Cached defaults merge under schema defaults with no explicit args.
	res, err := Parse(nil, def, nil, opts...)
	require.NoError(t, err)
	assert.EqualValues(t, "nodata", res.Flags.Selected("type"))
	assert.EqualValues(t, 2, res.Keyvals["verbose"])

	// Explicit arguments override the cache.
	res, err = Parse(nil, def, []any{"data"}, opts...)
	require.NoError(t, err)
	assert.EqualValues(t, "data", res.Flags.Selected("type"))
	assert.EqualValues(t, 2, res.Keyvals["verbose"])

	// The cache overrides import defaults.
	def.ImportDefaults = []any{"verbose", 9}
	res, err = Parse(nil, def, nil, opts...)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Keyvals["verbose"])

	// Other callers are unaffected.
	res, err = Parse(nil, exampleDef(), nil, Caller("SOFAsave"), Defaults(store))
	require.NoError(t, err)
	assert.EqualValues(t, "data", res.Flags.Selected("type"))
}

func TestExactlyOneActivePerGroup(t *testing.T) {
	def := Definition{
		Flags: map[string][]string{
			"type":  {"data", "nodata"},
			"scale": {"lin", "log", "db"},
		},
	}
	for _, args := range [][]any{
		nil,
		{"nodata"},
		{"log", "nodata", "db"},
		{"db", "lin", "nodata", "data"},
	} {
		res, err := Parse(nil, def, args)
		require.NoError(t, err)
		for _, group := range res.Flags.Groups() {
			active := 0
			for _, name := range def.Flags[group] {
				if res.Flags.Active(name) {
					active++
					assert.EqualValues(t, name, res.Flags.Selected(group))
				}
			}
			assert.EqualValues(t, 1, active, "group %q with args %v", group, args)
		}
	}
}

func TestDeterministic(t *testing.T) {
	def := exampleDef()
	def.Groups = map[string][]any{"quiet": {"nodata", "verbose", 0}}
	args := []any{5, "quiet", "verbose", 4}
	first, err := Parse([]string{"Index"}, def, args)
	require.NoError(t, err)
	for range iter.N(10) {
		again, err := Parse([]string{"Index"}, def, args)
		require.NoError(t, err)
		assert.EqualValues(t, first, again)
	}
}
