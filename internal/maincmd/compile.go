package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/mainer"

	"github.com/dbarros/pasvm/lang/codegen"
	"github.com/dbarros/pasvm/lang/parser"
	"github.com/dbarros/pasvm/lang/scanner"
	"github.com/dbarros/pasvm/lang/semantic"
)

// Compile reads one path from stdio.Stdin and compiles every .pas file it
// names. A file that fails at any stage is reported to stdio.Stdout as
// prose and compilation continues with the next file: each call into
// parser.ParseSource/semantic.Check/codegen.Generate starts from fresh
// state, so nothing needs to be reset explicitly between files. When debug
// is set, each file's global symbol table is printed to stdio.Stdout once
// it passes semantic analysis.
func Compile(ctx context.Context, stdio mainer.Stdio, debug bool) {
	line := bufio.NewScanner(stdio.Stdin)
	if !line.Scan() {
		fmt.Fprintln(stdio.Stdout, "no path provided on standard input")
		return
	}
	path := strings.TrimSpace(line.Text())

	files, err := pascalFiles(path)
	if err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return
	}

	outDir, err := outputDir()
	if err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return
	}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return
		default:
		}
		compileFile(stdio, f, outDir, debug)
	}
}

// pascalFiles resolves path to the ordered list of .pas files it names: the
// file itself, or every .pas entry of a directory in directory-listing
// order (os.ReadDir already returns entries sorted by name).
func pascalFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !strings.HasSuffix(strings.ToLower(path), ".pas") {
			return nil, fmt.Errorf("%s: not a .pas file", path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pas") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	return files, nil
}

// outputDir is a sibling directory named "output" next to the running
// binary, not the current working directory.
func outputDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "output"), nil
}

func compileFile(stdio mainer.Stdio, path, outDir string, debug bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stdout, err)
		return
	}

	prog, err := parser.ParseSource(path, src)
	if err != nil {
		scanner.PrintError(stdio.Stdout, err)
		return
	}
	var checkErr error
	if debug {
		checkErr = semantic.CheckAndDump(path, prog, stdio.Stdout)
	} else {
		checkErr = semantic.Check(path, prog)
	}
	if checkErr != nil {
		scanner.PrintError(stdio.Stdout, checkErr)
		return
	}
	lines, err := codegen.Generate(path, prog)
	if err != nil {
		scanner.PrintError(stdio.Stdout, err)
		return
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(outDir, stem+".vm")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		fmt.Fprintln(stdio.Stdout, err)
	}
}
