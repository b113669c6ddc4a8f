// Package arghelper resolves the heterogeneous call signatures of toolbox
// functions into flag and key-value structures, from a declared parameter
// definition and the raw argument list.
//
// For example:
//  def := arghelper.Definition{
//      Flags:   map[string][]string{"type": {"data", "nodata"}},
//      Keyvals: map[string]any{"Index": nil, "verbose": 0},
//  }
//  res, err := arghelper.Parse([]string{"Index"}, def,
//      []any{5, "nodata", "verbose", 1})
//  // res.Pos[0] == 5, res.Flags.Selected("type") == "nodata",
//  // res.Keyvals["verbose"] == 1
//
// Arguments are positional values first, then named tokens in any order: a
// flag name selects it within its mutually exclusive group, a key name
// consumes the following value, a group alias splices its predefined
// expansion in place, and the reserved "argimport" token merges a previously
// resolved Flags and Keyvals pair. Later tokens win, so defaults resolve in
// the order definition < import defaults < cached defaults < explicit
// arguments.
//
// Per-function default argument lists persist in a Store, created with
// NewStore and injected per call with the Defaults and Caller options.
package arghelper
