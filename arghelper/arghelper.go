package arghelper

type parser struct {
	caller string
	store  *Store

	posNames []string
	def      Definition

	flagGroup map[string]string // flag name -> owning group
	flags     Flags
	keyvals   Keyvals
}

// Parse resolves the raw argument list of a function against its parameter
// definition. posNames declares, in order, the parameters settable by
// position alone; args carries the actual call arguments: positional values
// first, then flag names, key names followed by their values, group aliases
// and argimport sequences, in any order.
//
// Resolution is deterministic and later arguments override earlier ones.
// All failures are typed errors and describe mistakes at the call site or
// in the definition; none of them is retryable.
func Parse(posNames []string, def Definition, args []any, opts ...ParseOpt) (*Result, error) {
	p := &parser{posNames: posNames}
	for _, opt := range opts {
		opt(p)
	}
	expanded, err := def.expanded(p.caller)
	if err != nil {
		return nil, err
	}
	p.def = expanded
	p.initKeyvals()
	rest, err := p.splitPositional(args)
	if err != nil {
		return nil, err
	}
	p.initFlags()
	if err := p.consume(p.withDefaults(rest)); err != nil {
		return nil, err
	}
	return p.result(), nil
}

func (p *parser) initKeyvals() {
	p.keyvals = make(Keyvals, len(p.def.Keyvals))
	for key, def := range p.def.Keyvals {
		p.keyvals[key] = def
	}
}

// splitPositional consumes the leading positional values: everything before
// the first string argument, capped at the declared positional count. The
// consumed values land in their declared keyval slots.
func (p *parser) splitPositional(args []any) (rest []any, err error) {
	first := 0
	for first < len(args) {
		if _, ok := args[first].(string); ok {
			break
		}
		first++
	}
	if first > len(p.posNames) && len(args) > len(p.posNames) {
		return nil, TooManyPositionalError{Caller: p.caller, Declared: len(p.posNames), Given: first}
	}
	n := first
	if n > len(p.posNames) {
		n = len(p.posNames)
	}
	for i := 0; i < n; i++ {
		p.keyvals[p.posNames[i]] = args[i]
	}
	return args[first:], nil
}

// initFlags activates the first-listed flag of every group.
func (p *parser) initFlags() {
	p.flags = Flags{
		selected: make(map[string]string, len(p.def.Flags)),
		active:   make(map[string]bool),
	}
	p.flagGroup = make(map[string]string)
	for group, names := range p.def.Flags {
		p.flags.selected[group] = names[0]
		for _, name := range names {
			p.flagGroup[name] = group
			p.flags.active[name] = false
		}
		p.flags.active[names[0]] = true
	}
}

// withDefaults builds the stream of named arguments: cached defaults for
// the caller come before the explicit arguments, and the definition's
// ImportDefaults come before both, so the override order is import
// defaults, then cached defaults, then explicit arguments.
func (p *parser) withDefaults(rest []any) []any {
	if p.store != nil && p.caller != "" {
		if cached := p.store.Get(p.caller); len(cached) > 0 {
			rest = append(append([]any(nil), cached...), rest...)
		}
	}
	if len(p.def.ImportDefaults) > 0 {
		rest = append(append([]any(nil), p.def.ImportDefaults...), rest...)
	}
	return rest
}

func (p *parser) consume(rest []any) error {
	for len(rest) != 0 {
		tok := rest[0]
		rest = rest[1:]
		name, ok := tok.(string)
		if !ok {
			return UnknownParamError{Caller: p.caller, Token: tok}
		}
		if group, ok := p.flagGroup[name]; ok {
			p.setFlag(group, name)
			continue
		}
		if _, ok := p.def.Keyvals[name]; ok {
			if len(rest) == 0 {
				return MissingValueError{Caller: p.caller, Key: name}
			}
			p.keyvals[name] = rest[0]
			rest = rest[1:]
			continue
		}
		if expansion, ok := p.def.Groups[name]; ok {
			rest = append(append([]any(nil), expansion...), rest...)
			continue
		}
		if name == argImport {
			var err error
			rest, err = p.mergeImport(rest)
			if err != nil {
				return err
			}
			continue
		}
		return UnknownParamError{Caller: p.caller, Token: tok}
	}
	return nil
}

// setFlag makes name the only active flag of its group.
func (p *parser) setFlag(group, name string) {
	for _, other := range p.def.Flags[group] {
		p.flags.active[other] = false
	}
	p.flags.selected[group] = name
	p.flags.active[name] = true
}

// mergeImport consumes the two values following an argimport token: a Flags
// and a Keyvals from an earlier resolution, merged entry by entry over the
// running result.
func (p *parser) mergeImport(rest []any) ([]any, error) {
	if len(rest) < 2 {
		return nil, ArgImportError{Caller: p.caller, Reason: "expects a Flags value and a Keyvals value"}
	}
	flags, ok := rest[0].(Flags)
	if !ok {
		return nil, ArgImportError{Caller: p.caller, Reason: "first value is not a Flags"}
	}
	var keyvals Keyvals
	switch kv := rest[1].(type) {
	case Keyvals:
		keyvals = kv
	case map[string]any:
		keyvals = kv
	default:
		return nil, ArgImportError{Caller: p.caller, Reason: "second value is not a Keyvals"}
	}
	p.flags.merge(flags)
	for key, val := range keyvals {
		p.keyvals[key] = val
	}
	return rest[2:], nil
}

func (p *parser) result() *Result {
	pos := make([]any, len(p.posNames))
	for i, name := range p.posNames {
		pos[i] = p.keyvals[name]
	}
	return &Result{Flags: p.flags, Keyvals: p.keyvals, Pos: pos}
}
