package lox

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Exit codes match spec.md §6's CLI contract exactly (the BSD sysexits.h
// convention the canonical Lox tooling follows).
const (
	ExitOK          = 0
	ExitUsage       = 64
	ExitStaticError = 65
	ExitInputError  = 66
	ExitRuntimeErr  = 70
)

// Runtime is the top-level driver wiring scanner -> parser -> resolver ->
// interpreter together, reporting static errors through a shared
// ErrorReporter and runtime errors through the value Interpret itself
// returns. It owns no I/O policy beyond stdout/stderr; `cmd/golox` decides
// what to do with the exit codes it hands back.
type Runtime struct {
	reporter    *ErrorReporter
	interpreter *Interpreter
}

func NewRuntime() *Runtime {
	reporter := NewErrorReporter()
	return &Runtime{
		reporter:    reporter,
		interpreter: NewInterpreter(reporter),
	}
}

// RunFile scans, parses, resolves and interprets the contents of path,
// returning the process exit code the caller should use.
func (r *Runtime) RunFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file: %s\n", err.Error())
		return ExitInputError
	}

	return r.run(string(data))
}

// RunPrompt runs a REPL: each line is scanned/parsed/resolved/interpreted
// in isolation against the same global environment, so declarations persist
// across lines but a bad line only resets the error reporter, not the whole
// session. Lines starting with ':' are introspection commands handled
// outside the Lox pipeline entirely (':' can't start a Lox statement, so
// there's no ambiguity with the language).
func (r *Runtime) RunPrompt() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">>> ")

		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "" {
			break
		}

		if r.handleCommand(line) {
			continue
		}

		r.run(line)
		r.reporter.Reset()
	}
}

// handleCommand recognizes the REPL's introspection commands and reports
// whether line was one of them.
//
//	:globals          list every name currently bound at the top level
//	:methods <Class>  list the methods <Class> declares, not counting
//	                   inherited ones
func (r *Runtime) handleCommand(line string) bool {
	switch {
	case line == ":globals":
		r.printGlobals()
		return true
	case strings.HasPrefix(line, ":methods "):
		r.printMethods(strings.TrimSpace(strings.TrimPrefix(line, ":methods ")))
		return true
	}

	return false
}

func (r *Runtime) printGlobals() {
	names := r.interpreter.Globals().Names()
	sortStrings(names)
	for _, name := range names {
		fmt.Println(name)
	}
}

func (r *Runtime) printMethods(className string) {
	value, ok := r.interpreter.Globals().GetGlobal(className)
	if !ok {
		fmt.Fprintf(os.Stderr, "undefined class '%s'\n", className)
		return
	}

	class, ok := value.(*LoxClass)
	if !ok {
		fmt.Fprintf(os.Stderr, "'%s' is not a class\n", className)
		return
	}

	for _, name := range class.MethodNames() {
		fmt.Println(name)
	}
}

// run executes the full scan -> parse -> resolve -> interpret pipeline over
// one source string and returns the exit code it produced.
func (r *Runtime) run(source string) int {
	scanner := NewScanner(bytes.NewBuffer([]byte(source)), r.reporter)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, r.reporter)
	statements := parser.Parse()

	if r.reporter.HadError() {
		r.printStaticErrors()
		return ExitStaticError
	}

	resolver := NewResolver(r.interpreter, r.reporter)
	resolver.Resolve(statements)

	if r.reporter.HadError() {
		r.printStaticErrors()
		return ExitStaticError
	}

	if err := r.interpreter.Interpret(statements); err != nil {
		r.printRuntimeError(err)
		return ExitRuntimeErr
	}

	return ExitOK
}

func (r *Runtime) printStaticErrors() {
	for _, e := range r.reporter.Errors() {
		fmt.Fprintln(os.Stderr, e.String())
	}
}

// printRuntimeError formats a propagated RuntimeError as spec.md §7
// requires: the message on its own line, followed by `[line N]`. Any other
// error type (there shouldn't be one, in practice) is just printed as-is.
func (r *Runtime) printRuntimeError(err error) {
	if re, ok := err.(*RuntimeError); ok {
		fmt.Fprintf(os.Stderr, "%s\n[line %d]\n", re.Message, re.Token.Line)
		return
	}

	fmt.Fprintln(os.Stderr, err.Error())
}
