package lox

import (
	"bytes"
	"strings"
)

// runProgram scans, parses, resolves and interprets src against a fresh
// Interpreter, capturing every Print statement's output. It mirrors what
// Runtime.run does internally, but exposes the intermediate ErrorReporter so
// tests can assert on static errors without going through the CLI's
// stdout/stderr plumbing.
func runProgram(src string) (output string, staticErrors []StaticError, runErr error) {
	reporter := NewErrorReporter()

	scanner := NewScanner(bytes.NewBufferString(src), reporter)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, reporter)
	statements := parser.Parse()

	if reporter.HadError() {
		return "", reporter.Errors(), nil
	}

	interpreter := NewInterpreter(reporter)
	var buf strings.Builder
	interpreter.SetStdout(func(line string) {
		buf.WriteString(line)
		buf.WriteString("\n")
	})

	resolver := NewResolver(interpreter, reporter)
	resolver.Resolve(statements)

	if reporter.HadError() {
		return "", reporter.Errors(), nil
	}

	runErr = interpreter.Interpret(statements)
	return buf.String(), nil, runErr
}
