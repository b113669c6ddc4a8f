package arghelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type resolveCase struct {
	args     []any
	err      error
	expected expectation
}

// expectation lists only the parts of a Result a case cares about; nil maps
// and slices are not checked.
type expectation struct {
	selected map[string]string
	active   map[string]bool
	keyvals  Keyvals
	pos      []any
}

func noErrorCase(expected expectation, args ...any) resolveCase {
	return resolveCase{args: args, expected: expected}
}

func errorCase(err error, args ...any) resolveCase {
	return resolveCase{args: args, err: err}
}

func (me resolveCase) Run(t *testing.T, posNames []string, def Definition, opts ...ParseOpt) {
	res, err := Parse(posNames, def, me.args, opts...)
	assert.EqualValues(t, me.err, err)
	if me.err != nil {
		return
	}
	for group, sel := range me.expected.selected {
		assert.EqualValues(t, sel, res.Flags.Selected(group), "group %q in %v", group, me)
	}
	for name, on := range me.expected.active {
		assert.EqualValues(t, on, res.Flags.Active(name), "flag %q in %v", name, me)
	}
	for key, val := range me.expected.keyvals {
		assert.EqualValues(t, val, res.Keyvals[key], "key %q in %v", key, me)
	}
	if me.expected.pos != nil {
		assert.EqualValues(t, me.expected.pos, res.Pos, "%v", me)
	}
}

func runCases(t *testing.T, posNames []string, def Definition, cases []resolveCase, opts ...ParseOpt) {
	for _, _case := range cases {
		_case.Run(t, posNames, def, opts...)
	}
}
