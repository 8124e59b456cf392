// Command edifactcodec parses, generates, and validates UN/EDIFACT
// interchanges.
package main

import (
	"fmt"
	"os"
)

const (
	exitOK         = 0 // command succeeded
	exitViolations = 1 // parse/validate found errors
	exitError      = 2 // usage or I/O error
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		usage()
		return exitError
	}

	subcommand := os.Args[1]

	switch subcommand {
	case "parse":
		return runParse(os.Args[2:])
	case "generate":
		return runGenerate(os.Args[2:])
	case "validate":
		return runValidate(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", subcommand)
		usage()
		return exitError
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: edifactcodec <command> [options]

Commands:
  parse       Parse an EDIFACT interchange and print its structure
  generate    Generate an EDIFACT interchange from a canonical JSON order
  validate    Validate an EDIFACT interchange's structural invariants

Use "edifactcodec <command> --help" for more information about a command.
`)
}
