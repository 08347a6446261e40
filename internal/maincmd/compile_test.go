package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbarros/pasvm/internal/maincmd"
)

func TestCompileSingleFileWritesListingNextToBinary(t *testing.T) {
	dir := t.TempDir()
	src := "program P;\nvar x: integer;\nbegin\n  x := 1;\n  write(x)\nend.\n"
	file := filepath.Join(dir, "hello.pas")
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))

	exe, err := os.Executable()
	require.NoError(t, err)
	outDir := filepath.Join(filepath.Dir(exe), "output")
	defer os.RemoveAll(outDir)

	var stdout, stderr bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(file + "\n"), Stdout: &stdout, Stderr: &stderr}

	maincmd.Compile(context.Background(), stdio, false)

	out, err := os.ReadFile(filepath.Join(outDir, "hello.vm"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "START")
	assert.Contains(t, string(out), "STOP")
	assert.Empty(t, stdout.String())
}

func TestCompileDirectoryProcessesAllPasFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pas", "b.pas"} {
		src := "program P;\nbegin\nend.\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	exe, err := os.Executable()
	require.NoError(t, err)
	outDir := filepath.Join(filepath.Dir(exe), "output")
	defer os.RemoveAll(outDir)

	var stdout, stderr bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(dir + "\n"), Stdout: &stdout, Stderr: &stderr}

	maincmd.Compile(context.Background(), stdio, false)

	_, errA := os.Stat(filepath.Join(outDir, "a.vm"))
	_, errB := os.Stat(filepath.Join(outDir, "b.vm"))
	assert.NoError(t, errA)
	assert.NoError(t, errB)
}

func TestCompileReportsErrorAsProse(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.pas")
	require.NoError(t, os.WriteFile(file, []byte("program P;\nbegin\n  y := 1\nend.\n"), 0o644))

	var stdout, stderr bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(file + "\n"), Stdout: &stdout, Stderr: &stderr}

	maincmd.Compile(context.Background(), stdio, false)

	assert.NotEmpty(t, stdout.String())
}

func TestCompileNonPasFileIsReportedAsError(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "readme.txt")
	require.NoError(t, os.WriteFile(file, []byte("not pascal"), 0o644))

	var stdout, stderr bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(file + "\n"), Stdout: &stdout, Stderr: &stderr}

	maincmd.Compile(context.Background(), stdio, false)

	assert.Contains(t, stdout.String(), "not a .pas file")
}

func TestCompileDebugPrintsGlobalSymbolTable(t *testing.T) {
	dir := t.TempDir()
	src := "program P;\nvar total: integer;\nbegin\n  total := 1\nend.\n"
	file := filepath.Join(dir, "hello.pas")
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))

	exe, err := os.Executable()
	require.NoError(t, err)
	outDir := filepath.Join(filepath.Dir(exe), "output")
	defer os.RemoveAll(outDir)

	var stdout, stderr bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(file + "\n"), Stdout: &stdout, Stderr: &stderr}

	maincmd.Compile(context.Background(), stdio, true)

	assert.Contains(t, stdout.String(), "globals:")
	assert.Contains(t, stdout.String(), "total")
}
