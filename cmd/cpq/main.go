/*
Cpq compiles a CPL source file into a quad program.

The compiler reads the given .cpl file and writes the compiled quads to a file
with the same base name and the .qud extension. If the source has problems,
the diagnostics are printed one per line and no output file is produced.

Usage:

	cpq [flags] <path-to-source>

The flags are:

	-v, --version
		Give the current version of cpq and then exit.

	-o, --output FILE
		Write the quad program to FILE instead of deriving the name from
		the source file.

	-b, --binary
		Additionally write the program in binary encoding next to the
		listing, with the .qbc extension.

	-r, --run
		Execute the compiled program on the quad VM after a successful
		compile, reading program input from stdin.

	-p, --print
		Print the quad program to stdout instead of writing any file.

	-C, --config FILE
		Read toolchain configuration from FILE instead of cpq.toml.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dekarrin/cpq"
	"github.com/dekarrin/cpq/internal/config"
	"github.com/dekarrin/cpq/internal/version"
	"github.com/dekarrin/cpq/vm"
)

const (

	// ExitSuccess indicates a successful program execution. Note that a
	// compilation that fails with diagnostics still exits with this code; the
	// diagnostics themselves are the result.
	ExitSuccess = iota

	// ExitUsageError indicates the command line could not be understood.
	ExitUsageError

	// ExitError indicates an unsuccessful execution due to an I/O problem, an
	// internal compiler error, or a VM runtime error.
	ExitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	outputFile  *string = pflag.StringP("output", "o", "", "Write the compiled program to the given file")
	emitBinary  *bool   = pflag.BoolP("binary", "b", false, "Additionally write the binary-encoded program (.qbc)")
	runProgram  *bool   = pflag.BoolP("run", "r", false, "Execute the compiled program on the quad VM")
	printOnly   *bool   = pflag.BoolP("print", "p", false, "Print the program to stdout instead of writing files")
	configFile  *string = pflag.StringP("config", "C", config.DefaultPath, "Read toolchain configuration from the given file")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
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

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: cpq [flags] <path-to-source>\n")
		returnCode = ExitUsageError
		return
	}
	sourcePath := pflag.Arg(0)

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitError
		return
	}

	f, err := os.Open(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitError
		return
	}

	prog, diags, err := cpq.Compile(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitError
		return
	}

	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Println(d.String())
		}
		fmt.Println(cfg.Output.Signature)
		return
	}

	listing, err := prog.Listing(cfg.Output.Signature)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitError
		return
	}

	if *printOnly {
		fmt.Print(listing)
		if !strings.HasSuffix(listing, "\n") {
			fmt.Println()
		}
	} else {
		outPath := *outputFile
		if outPath == "" {
			outPath = withExtension(sourcePath, cfg.Output.Extension)
		}

		if err := os.WriteFile(outPath, []byte(listing), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitError
			return
		}

		if *emitBinary {
			data, err := prog.MarshalBinary()
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
				returnCode = ExitError
				return
			}
			if err := os.WriteFile(withExtension(outPath, "qbc"), data, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
				returnCode = ExitError
				return
			}
		}
	}

	if *runProgram {
		m := vm.New(os.Stdin, os.Stdout)
		m.StepLimit = cfg.Exec.MaxSteps
		if err := m.Run(prog); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitError
			return
		}
	}
}

// withExtension swaps the extension of path for ext, which is given without
// its dot.
func withExtension(path, ext string) string {
	base := path
	if i := strings.LastIndexByte(base, '.'); i > strings.LastIndexByte(base, '/') {
		base = base[:i]
	}
	return base + "." + ext
}
