package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInterpreterConcreteScenarios exercises every literal input/output pair
// from spec.md §8's scenario table.
func TestInterpreterConcreteScenarios(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		expect string
	}{
		{
			name:   "arithmetic",
			src:    `print 1 + 2;`,
			expect: "3\n",
		},
		{
			name:   "block shadowing",
			src:    `var a = 1; { var a = 2; print a; } print a;`,
			expect: "2\n1\n",
		},
		{
			name:   "recursive fibonacci",
			src:    `fun f(n) { if (n <= 1) return n; return f(n-1) + f(n-2); } print f(10);`,
			expect: "55\n",
		},
		{
			name:   "method call",
			src:    `class A { greet() { print "hi"; } } A().greet();`,
			expect: "hi\n",
		},
		{
			name:   "super dispatch",
			src:    `class A { m() { print "A"; } } class B < A { m() { super.m(); print "B"; } } B().m();`,
			expect: "A\nB\n",
		},
		{
			name:   "string concatenation assignment",
			src:    `var x = "foo"; x = x + "bar"; print x;`,
			expect: "foobar\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, staticErrs, err := runProgram(tc.src)
			require.Empty(t, staticErrs)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, out)
		})
	}
}

// TestClosureCapturesMutation is spec.md §8 invariant 3: a counter closure
// returned from an enclosing function observes later mutations to its
// captured local across calls.
func TestClosureCapturesMutation(t *testing.T) {
	src := `
fun makeCounter() {
  var i = 0;
  fun counter() {
    i = i + 1;
    print i;
  }
  return counter;
}
var counter = makeCounter();
counter();
counter();
counter();
`
	out, staticErrs, err := runProgram(src)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

// TestForLoopDesugaring checks the for-statement's init/condition/increment
// semantics on a loop that declares its counter in the initializer.
func TestForLoopDesugaring(t *testing.T) {
	src := `
var total = 0;
for (var i = 0; i < 5; i = i + 1) {
  total = total + i;
}
print total;
`
	out, staticErrs, err := runProgram(src)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

// TestWhileLoop exercises a plain while loop with mutation of an outer var.
func TestWhileLoop(t *testing.T) {
	src := `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`
	out, staticErrs, err := runProgram(src)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

// TestLogicalShortCircuit checks that `and`/`or` return the operand value
// itself (not a coerced bool) and short-circuit evaluation of the right side.
func TestLogicalShortCircuit(t *testing.T) {
	src := `
print "hi" or 2;
print nil or "yes";
print false and "unreached";
print 1 and 2;
`
	out, staticErrs, err := runProgram(src)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "hi\nyes\nfalse\n2\n", out)
}

// TestClassFieldsAndMethods covers field read/write, method lookup through
// an instance, and arity-checked constructors.
func TestClassFieldsAndMethods(t *testing.T) {
	src := `
class Counter {
  init(start) {
    this.value = start;
  }

  increment() {
    this.value = this.value + 1;
    return this.value;
  }
}

var c = Counter(10);
print c.increment();
print c.increment();
print c.value;
`
	out, staticErrs, err := runProgram(src)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "11\n12\n12\n", out)
}

// TestInitReturnsThisEvenWithBareReturn is spec.md §13's open-question
// decision: a bare `return;` inside init must still yield `this`.
func TestInitReturnsThisEvenWithBareReturn(t *testing.T) {
	src := `
class Thing {
  init() {
    this.ready = true;
    return;
  }
}
var t = Thing();
print t.ready;
`
	out, staticErrs, err := runProgram(src)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

// TestNativeClock sanity-checks the one built-in function: it takes no
// arguments and returns a Number.
func TestNativeClock(t *testing.T) {
	src := `var t = clock(); print t >= 0;`
	out, staticErrs, err := runProgram(src)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

// --- Negative cases from spec.md §8 ---

func TestRuntimeErrorMixedPlusOperands(t *testing.T) {
	out, staticErrs, err := runProgram(`print 1 + "a";`)
	require.Empty(t, staticErrs)
	require.Error(t, err)
	assert.Empty(t, out)

	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Operands must be two numbers or two strings.", re.Message)
}

func TestStaticErrorReturnFromTopLevel(t *testing.T) {
	_, staticErrs, err := runProgram(`fun f() { return 1; } var x = f; return 2;`)
	require.NoError(t, err)
	require.NotEmpty(t, staticErrs)
	assert.Contains(t, staticErrs[0].Message, "Can't return from top-level code.")
}

func TestStaticErrorSelfInheritance(t *testing.T) {
	_, staticErrs, err := runProgram(`class A < A {}`)
	require.NoError(t, err)
	require.NotEmpty(t, staticErrs)
	assert.Contains(t, staticErrs[0].Message, "A class can't inherit from itself.")
}

func TestStaticErrorDuplicateLocalDeclaration(t *testing.T) {
	_, staticErrs, err := runProgram(`{ var a = 1; var a = 2; }`)
	require.NoError(t, err)
	require.NotEmpty(t, staticErrs)
	assert.Contains(t, staticErrs[0].Message, "Already a variable with this name in this scope.")
}

func TestStaticErrorThisOutsideClass(t *testing.T) {
	_, staticErrs, err := runProgram(`print this;`)
	require.NoError(t, err)
	require.NotEmpty(t, staticErrs)
	assert.Contains(t, staticErrs[0].Message, "Can't use 'this' outside of a class.")
}

func TestStaticErrorSuperWithoutSuperclass(t *testing.T) {
	_, staticErrs, err := runProgram(`class A { m() { super.m(); } }`)
	require.NoError(t, err)
	require.NotEmpty(t, staticErrs)
	assert.Contains(t, staticErrs[0].Message, "Can't use 'super' in a class with no superclass.")
}

func TestRuntimeErrorUndefinedVariable(t *testing.T) {
	_, staticErrs, err := runProgram(`print undeclared;`)
	require.Empty(t, staticErrs)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Undefined variable 'undeclared'.", re.Message)
}

func TestRuntimeErrorNotCallable(t *testing.T) {
	_, staticErrs, err := runProgram(`var x = 1; x();`)
	require.Empty(t, staticErrs)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Can only call functions and classes.", re.Message)
}

func TestRuntimeErrorWrongArity(t *testing.T) {
	_, staticErrs, err := runProgram(`fun f(a, b) { return a + b; } f(1);`)
	require.Empty(t, staticErrs)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Expected 2 arguments but got 1.", re.Message)
}

func TestRuntimeErrorSuperclassNotAClass(t *testing.T) {
	_, staticErrs, err := runProgram(`var NotAClass = 1; class A < NotAClass {}`)
	require.Empty(t, staticErrs)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Superclass must be a class.", re.Message)
}

func TestRuntimeErrorPropertyAccessOnNonInstance(t *testing.T) {
	_, staticErrs, err := runProgram(`var x = 1; print x.foo;`)
	require.Empty(t, staticErrs)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Only instances have properties.", re.Message)
}

func TestRuntimeErrorUndefinedProperty(t *testing.T) {
	_, staticErrs, err := runProgram(`class A {} print A().missing;`)
	require.Empty(t, staticErrs)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Undefined property 'missing'.", re.Message)
}

// TestAssignmentToUndefinedGlobal covers spec.md §3's "assignment to an
// undeclared global at runtime is an error."
func TestAssignmentToUndefinedGlobal(t *testing.T) {
	_, staticErrs, err := runProgram(`x = 1;`)
	require.Empty(t, staticErrs)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Undefined variable 'x'.", re.Message)
}

// TestGlobalRedeclarationAllowed covers spec.md §3's "declaration of the
// same global twice overwrites silently" — no static or runtime error.
func TestGlobalRedeclarationAllowed(t *testing.T) {
	out, staticErrs, err := runProgram(`var a = 1; var a = 2; print a;`)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

// TestDeepInheritanceChain exercises FindMethod walking more than one level
// of superclass, and that a grandchild method can still reach the root's
// method via an intermediate super call.
func TestDeepInheritanceChain(t *testing.T) {
	src := `
class A {
  speak() { print "A"; }
}
class B < A {
  speak() { super.speak(); print "B"; }
}
class C < B {
  speak() { super.speak(); print "C"; }
}
C().speak();
`
	out, staticErrs, err := runProgram(src)
	require.Empty(t, staticErrs)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nC\n", out)
}
