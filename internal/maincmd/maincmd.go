// Package maincmd implements the pascalc command-line driver: it reads a
// single path from standard input and compiles the Pascal source file(s)
// it names, following the teacher's pattern of an injected mainer.Stdio
// rather than talking to os.Stdout directly.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "pascalc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s
       %[1]s -h|--help
       %[1]s -v|--version

Pascal-to-stack-VM compiler driver.

Reads a single line from standard input naming a .pas file or a
directory of .pas files, compiles each one, and writes the emitted
instruction listing to <stem>.vm in an "output" directory next to the
%[1]s binary. A file that fails to compile is reported to standard
output as prose; the driver's exit status is always success.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -d --debug                Print each file's global symbol table.
`, binName)
)

// Cmd is the pascalc command, driven by github.com/mna/mainer's flag
// parser the same way the teacher's internal/maincmd.Cmd is.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Debug   bool `flag:"d,debug"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string)         { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }
func (c *Cmd) Validate() error                { return nil }

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	Compile(ctx, stdio, c.Debug)
	// Every per-file failure is already printed as prose; the driver itself
	// never reports a process-level failure.
	return mainer.Success
}
