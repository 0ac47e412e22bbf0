/*
Cpqd starts the CPL compile service.

The service accepts CPL source over HTTP and returns compiled quad programs
or diagnostics. See the server package for the endpoints.

Usage:

	cpqd [flags]

The flags are:

	-v, --version
		Give the current version of cpqd and then exit.

	-a, --address ADDRESS
		Listen on the given address. Defaults to the configured address,
		or :8424.

	-C, --config FILE
		Read toolchain configuration from FILE instead of cpq.toml.
*/
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/cpq/internal/config"
	"github.com/dekarrin/cpq/internal/version"
	"github.com/dekarrin/cpq/server"
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
	address     *string = pflag.StringP("address", "a", "", "Listen on the given address")
	configFile  *string = pflag.StringP("config", "C", config.DefaultPath, "Read toolchain configuration from the given file")
)

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

	listenAddr := cfg.Server.Address
	if *address != "" {
		listenAddr = *address
	}

	fmt.Printf("cpqd %s listening on %s\n", version.Current, listenAddr)
	if err := http.ListenAndServe(listenAddr, server.New()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitError
	}
}
