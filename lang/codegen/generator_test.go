package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbarros/pasvm/lang/codegen"
	"github.com/dbarros/pasvm/lang/parser"
	"github.com/dbarros/pasvm/lang/semantic"
)

func compile(t *testing.T, src string) []string {
	t.Helper()
	prog, err := parser.ParseSource("t.pas", []byte(src))
	require.NoError(t, err)
	require.NoError(t, semantic.Check("t.pas", prog))
	lines, err := codegen.Generate("t.pas", prog)
	require.NoError(t, err)
	return lines
}

func countOpcode(lines []string, op string) int {
	n := 0
	for _, l := range lines {
		if strings.Contains(l, op) {
			n++
		}
	}
	return n
}

// labelsDefined maps each label defined in lines to the number of times it
// is defined.
func labelsDefined(lines []string) map[string]int {
	defs := map[string]int{}
	for _, l := range lines {
		if strings.HasSuffix(l, ":") {
			defs[strings.TrimSuffix(l, ":")]++
		}
	}
	return defs
}

func TestGenerateMinimalProgramHasNoHoistJump(t *testing.T) {
	lines := compile(t, `
program P;
var x: integer;
begin
  x := 5;
  write(x)
end.
`)
	require.NotEmpty(t, lines)
	assert.Equal(t, "START", strings.TrimSpace(lines[1]))
	assert.NotContains(t, lines[2], "JUMP")
	assert.Equal(t, "STOP", strings.TrimSpace(lines[len(lines)-1]))
}

func TestGenerateGlobalInitCountMatchesDeclaredVariables(t *testing.T) {
	lines := compile(t, `
program P;
var a, b, c: integer;
begin
  a := 1
end.
`)
	assert.Equal(t, 3, countOpcode(lines[:3], "PUSHI 0"))
}

func TestGenerateHoistsFunctionsBehindJump(t *testing.T) {
	lines := compile(t, `
program P;
function Double(n: integer): integer;
begin
  Double := n * 2
end;
begin
  write(Double(4))
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "JUMP")
	assert.Contains(t, joined, "PUSHA DOUBLE_1")
	assert.Contains(t, joined, "CALL")
	assert.Contains(t, joined, "RETURN")
}

func TestGenerateLabelsAreUnique(t *testing.T) {
	lines := compile(t, `
program P;
var i: integer;
begin
  for i := 1 to 10 do
    if i > 5 then
      write(i)
    else
      write(0);
  for i := 10 downto 1 do
    write(i)
end.
`)
	defs := labelsDefined(lines)
	for label, n := range defs {
		require.Equal(t, 1, n, "duplicate label %s", label)
	}
	assert.NotEmpty(t, defs)
}

func TestGenerateForLoopStoresControlVariableOnceBeforeLoopAndOncePerIteration(t *testing.T) {
	lines := compile(t, `
program P;
var i: integer;
begin
  for i := 1 to 3 do
    write(i)
end.
`)
	assert.Equal(t, 2, countOpcode(lines, "STOREG"))
}

func TestGenerateDivisionAlwaysEmitsFDIV(t *testing.T) {
	lines := compile(t, `
program P;
var a, b: integer;
begin
  a := 1;
  b := 2;
  write(a / b)
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "ITOF")
	assert.Contains(t, joined, "FDIV")
}

func TestGenerateMixedRealIntegerAdditionWidensInteger(t *testing.T) {
	lines := compile(t, `
program P;
var a: integer;
var b: real;
begin
  b := a + b;
  write(b)
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "ITOF")
	assert.Contains(t, joined, "FADD")
}

func TestGenerateVarParameterCallPushesAddress(t *testing.T) {
	lines := compile(t, `
program P;
procedure Inc1(var n: integer);
begin
  n := n + 1
end;
var x: integer;
begin
  x := 1;
  Inc1(x)
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "PUSHGP")
	assert.Contains(t, joined, "PADD")
	assert.Contains(t, joined, "PUSHA INC1_1")
}

func TestGenerateArrayAssignmentUsesStoren(t *testing.T) {
	lines := compile(t, `
program P;
var a: array[1..5] of integer;
begin
  a[1] := 10
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "STOREN")
	assert.Contains(t, joined, "PUSHI 1")
	assert.Contains(t, joined, "SUB")
}

func TestGenerateWriteSelectsOpcodeByType(t *testing.T) {
	lines := compile(t, `
program P;
var s: string;
var r: real;
var n: integer;
begin
  writeln(s, r, n)
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "WRITES")
	assert.Contains(t, joined, "WRITEF")
	assert.Contains(t, joined, "WRITEI")
	assert.Contains(t, joined, "WRITELN")
}

func TestGenerateBareWritelnEmitsOnlyWriteln(t *testing.T) {
	lines := compile(t, `
program P;
begin
  writeln
end.
`)
	assert.Equal(t, []string{"    START", "    WRITELN", "    STOP"}, lines)
}

func TestGenerateLengthOnStringLiteralFoldsToConstant(t *testing.T) {
	lines := compile(t, `
program P;
begin
  write(length('hello'))
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "PUSHI 5")
	assert.NotContains(t, joined, "STRLEN")
}

func TestGenerateAbsEmitsBranchlessSequence(t *testing.T) {
	lines := compile(t, `
program P;
var x: integer;
begin
  x := -3;
  write(abs(x))
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "INF")
	assert.Contains(t, joined, "JZ ABS_END")
}

func TestGenerateStringCharAccessUsesCharat(t *testing.T) {
	lines := compile(t, `
program P;
var s: string;
var c: char;
begin
  c := s[1]
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "CHARAT")
}

func TestGenerateAbsRejectsRealArgument(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program P;
var x: real;
begin
  x := 1.0;
  write(abs(x))
end.
`))
	require.NoError(t, err)
	require.NoError(t, semantic.Check("t.pas", prog))
	_, err = codegen.Generate("t.pas", prog)
	assert.Error(t, err)
}

func TestGenerateSqrRejectsRealArgument(t *testing.T) {
	prog, err := parser.ParseSource("t.pas", []byte(`
program P;
var x: real;
begin
  x := 1.0;
  write(sqr(x))
end.
`))
	require.NoError(t, err)
	require.NoError(t, semantic.Check("t.pas", prog))
	_, err = codegen.Generate("t.pas", prog)
	assert.Error(t, err)
}

func TestGenerateUnsupportedBuiltinEmitsCommentOnly(t *testing.T) {
	lines := compile(t, `
program P;
var s: string;
begin
  s := uppercase(s)
end.
`)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "unsupported builtin uppercase")
}
