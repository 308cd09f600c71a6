package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mython/lexer"
	"mython/parser"
	"mython/runtime"
)

// runProgram lexes, parses and executes source against a fresh root
// scope, returning everything written to the output stream.
func runProgram(t *testing.T, source string) string {
	t.Helper()

	l := lexer.New(strings.NewReader(source))
	p := parser.New(l)
	prog, err := p.ParseProgram()
	require.NoError(t, err)

	ctx := runtime.NewDummyContext()
	prog.Execute(runtime.NewClosure(), ctx)
	return ctx.String()
}

func TestScenarioArithmetic(t *testing.T) {
	out := runProgram(t, "x = 1\ny = 2\nprint x + y\n")
	require.Equal(t, "3\n", out)
}

func TestScenarioStringConcat(t *testing.T) {
	out := runProgram(t, "s = \"hello\"\nprint s + \" world\"\n")
	require.Equal(t, "hello world\n", out)
}

func TestScenarioIfElse(t *testing.T) {
	src := "if 1 < 2:\n  print \"yes\"\nelse:\n  print \"no\"\n"
	require.Equal(t, "yes\n", runProgram(t, src))
}

func TestScenarioClassStr(t *testing.T) {
	src := "class Shape:\n  def __str__():\n    return \"shape\"\ns = Shape()\nprint s\n"
	require.Equal(t, "shape\n", runProgram(t, src))
}

func TestScenarioInheritanceShadowing(t *testing.T) {
	src := "class A:\n  def greet():\n    return \"A\"\nclass B(A):\n  def greet():\n    return \"B\"\nprint B().greet()\n"
	require.Equal(t, "B\n", runProgram(t, src))
}

func TestScenarioCounter(t *testing.T) {
	src := "class Counter:\n  def __init__(n):\n    self.n = n\n  def inc():\n    self.n = self.n + 1\n    return self.n\nc = Counter(10)\nc.inc()\nprint c.inc()\n"
	require.Equal(t, "12\n", runProgram(t, src))
}

func TestParseErrorOnLexerFailure(t *testing.T) {
	// lexer.New lexes the first token itself, so the malformed string
	// comes after it and is hit while ParseProgram is running.
	l := lexer.New(strings.NewReader("x = \"unterminated\n"))
	p := parser.New(l)
	_, err := p.ParseProgram()
	require.Error(t, err)
}
