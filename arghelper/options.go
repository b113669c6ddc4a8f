package arghelper

type ParseOpt func(p *parser)

// Caller names the function whose arguments are being resolved. The name
// prefixes error messages and keys the Defaults store lookup.
func Caller(name string) ParseOpt {
	return func(p *parser) {
		p.caller = name
	}
}

// Defaults injects the store consulted for cached per-function defaults.
// It has no effect unless Caller is also given.
func Defaults(s *Store) ParseOpt {
	return func(p *parser) {
		p.store = s
	}
}
