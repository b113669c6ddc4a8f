package arghelper

import "fmt"

// TooManyPositionalError reports a call whose leading non-string values
// exceed the declared positional parameters.
type TooManyPositionalError struct {
	Caller   string
	Declared int
	Given    int
}

func (e TooManyPositionalError) Error() string {
	return fmt.Sprintf("%stoo many positional arguments: %d given, %d declared",
		callerPrefix(e.Caller), e.Given, e.Declared)
}

// UnknownParamError reports a token that matches no declared flag, key or
// group alias. Token keeps the offending value, which need not be a string.
type UnknownParamError struct {
	Caller string
	Token  any
}

func (e UnknownParamError) Error() string {
	if s, ok := e.Token.(string); ok {
		return fmt.Sprintf("%sunknown parameter: %q", callerPrefix(e.Caller), s)
	}
	return fmt.Sprintf("%sunknown parameter: non-string value %v", callerPrefix(e.Caller), e.Token)
}

// MissingValueError reports a key name given as the last token, with no
// value following it.
type MissingValueError struct {
	Caller string
	Key    string
}

func (e MissingValueError) Error() string {
	return fmt.Sprintf("%smissing value for key %q", callerPrefix(e.Caller), e.Key)
}

// ArgImportError reports a malformed "argimport" sequence.
type ArgImportError struct {
	Caller string
	Reason string
}

func (e ArgImportError) Error() string {
	return fmt.Sprintf("%sargimport: %s", callerPrefix(e.Caller), e.Reason)
}

// DefinitionError reports a broken parameter definition: colliding names,
// use of the reserved "argimport" token, an empty flag group, a nil import
// or a group alias cycle. These are programming errors in the definition,
// not in the argument list.
type DefinitionError struct {
	Caller string
	Reason string
}

func (e DefinitionError) Error() string {
	return fmt.Sprintf("%sinvalid definition: %s", callerPrefix(e.Caller), e.Reason)
}

func callerPrefix(caller string) string {
	if caller == "" {
		return ""
	}
	return caller + ": "
}
