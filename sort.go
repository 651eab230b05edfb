package lox

import "golang.org/x/exp/slices"

// sortStrings sorts names in place. Used wherever this module needs
// deterministic string ordering for REPL introspection output
// (Class.MethodNames backing `:methods`, Runtime.printGlobals backing
// `:globals`): golang.org/x/exp/slices instead of the stdlib's sort.Strings,
// since this repo already pins the same golang.org/x/exp release
// mna-nenuphar depends on (mna-nenuphar uses it for lang/grammar's EBNF
// parsing, not sorting — slices.Sort is this repo's own use of that module).
func sortStrings(names []string) {
	slices.Sort(names)
}
