/*
Cpqi starts an interactive CPL compilation session.

Lines typed at the prompt accumulate into a source buffer. Session commands
start with ":" and operate on the buffer; everything else is CPL source. Type
":help" in a session for the command list and ":quit" to leave.

Usage:

	cpqi [flags]

The flags are:

	-v, --version
		Give the current version of cpqi and then exit.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines, even when launched in a tty.

	-C, --config FILE
		Read toolchain configuration from FILE instead of cpq.toml.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"

	"github.com/dekarrin/cpq"
	"github.com/dekarrin/cpq/internal/config"
	"github.com/dekarrin/cpq/internal/input"
	"github.com/dekarrin/cpq/internal/version"
	"github.com/dekarrin/cpq/vm"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitError indicates an unsuccessful program execution.
	ExitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	configFile  *string = pflag.StringP("config", "C", config.DefaultPath, "Read toolchain configuration from the given file")
)

const helpText = "Session commands: " +
	":help shows this text; " +
	":list shows the source buffer with line numbers; " +
	":clear empties the source buffer; " +
	":compile compiles the buffer and prints the quads; " +
	":run compiles the buffer and executes it on the quad VM; " +
	":symbols shows the symbol table declared by the buffer; " +
	":load FILE replaces the buffer with the contents of FILE; " +
	":write FILE saves the buffer to FILE; " +
	":quit leaves the session. " +
	"Any other input is appended to the source buffer as CPL code."

// lineReader is satisfied by both input readers.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitError
		return
	}

	var rd lineReader
	if *forceDirect {
		rd = input.NewDirectReader(os.Stdin)
	} else {
		ird, err := input.NewInteractiveReader("cpl> ")
		if err != nil {
			rd = input.NewDirectReader(os.Stdin)
		} else {
			rd = ird
		}
	}
	defer rd.Close()

	fmt.Printf("cpqi %s - :help for commands, :quit to leave\n", version.Current)

	var buffer []string
	for {
		line, err := rd.ReadLine()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitError
			return
		}

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, ":") {
			buffer = append(buffer, line)
			continue
		}

		cmd, arg := splitCommand(trimmed)
		switch cmd {
		case ":quit", ":q":
			return
		case ":help":
			fmt.Println(rosed.Edit(helpText).Wrap(78).String())
		case ":list":
			for i, l := range buffer {
				fmt.Printf("%3d | %s\n", i+1, l)
			}
		case ":clear":
			buffer = nil
		case ":compile":
			compileBuffer(buffer, cfg, false)
		case ":run":
			compileBuffer(buffer, cfg, true)
		case ":symbols":
			showSymbols(buffer, cfg)
		case ":load":
			if arg == "" {
				fmt.Println(":load needs a file name")
				continue
			}
			data, err := os.ReadFile(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
				continue
			}
			buffer = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
			fmt.Printf("loaded %d lines from %s\n", len(buffer), arg)
		case ":write":
			if arg == "" {
				fmt.Println(":write needs a file name")
				continue
			}
			data := strings.Join(buffer, "\n") + "\n"
			if err := os.WriteFile(arg, []byte(data), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
				continue
			}
			fmt.Printf("wrote %d lines to %s\n", len(buffer), arg)
		default:
			fmt.Printf("unknown command %s - :help for commands\n", cmd)
		}
	}
}

func splitCommand(line string) (cmd, arg string) {
	parts := strings.SplitN(line, " ", 2)
	cmd = parts[0]
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func showSymbols(buffer []string, cfg config.Config) {
	src := strings.Join(buffer, "\n")

	syms, diags, err := cpq.SymbolsString(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}

	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Println(d.String())
		}
		fmt.Println(cfg.Output.Signature)
		return
	}

	all := syms.All()
	if len(all) == 0 {
		fmt.Println("no symbols declared")
		return
	}

	data := [][]string{{"Symbol", "Type", "Line"}}
	for _, s := range all {
		data = append(data, []string{s.Name, s.Type.String(), strconv.Itoa(s.Line)})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	fmt.Println(rosed.Edit("").
		InsertTableOpts(0, data, 40, tableOpts).
		String())
}

func compileBuffer(buffer []string, cfg config.Config, run bool) {
	src := strings.Join(buffer, "\n")

	prog, diags, err := cpq.CompileString(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}

	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Println(d.String())
		}
		fmt.Println(cfg.Output.Signature)
		return
	}

	if run {
		m := vm.New(os.Stdin, os.Stdout)
		m.StepLimit = cfg.Exec.MaxSteps
		if err := m.Run(prog); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		}
		return
	}

	lines, err := prog.Lines()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}
	for i, l := range lines {
		fmt.Printf("%3d | %s\n", i+1, l)
	}
}
