package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/edifactkit/edifact"
)

// ValidateReport is the JSON/text shape printed by the validate subcommand.
type ValidateReport struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runValidate(args []string) int {
	validateFlags := flag.NewFlagSet("validate", flag.ExitOnError)
	var format string
	validateFlags.StringVar(&format, "format", "text", "Output format: text, json")
	validateFlags.Usage = validateUsage
	_ = validateFlags.Parse(args)

	if validateFlags.NArg() != 1 {
		validateUsage()
		return exitError
	}

	filename := validateFlags.Arg(0)
	input, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	cd := edifact.NewCodec(nil)
	report := ValidateReport{File: filename}

	res := cd.ParseDocument(input)
	if !res.Success {
		for _, e := range res.Errors {
			report.Errors = append(report.Errors, e.String())
		}
		outputValidateReport(report, format)
		return exitViolations
	}

	diags := cd.ValidateSyntax(*res.Interchange)
	for _, d := range diags.Errors() {
		report.Errors = append(report.Errors, d.String())
	}
	for _, d := range diags.Warnings() {
		report.Warnings = append(report.Warnings, d.String())
	}
	report.Valid = len(report.Errors) == 0

	outputValidateReport(report, format)

	if !report.Valid {
		return exitViolations
	}
	return exitOK
}

func outputValidateReport(report ValidateReport, format string) {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		}
	default:
		if report.Valid {
			fmt.Printf("✓ %s is structurally valid\n", report.File)
		} else {
			fmt.Printf("✗ %s has %d error(s):\n", report.File, len(report.Errors))
			for _, e := range report.Errors {
				fmt.Printf("  - %s\n", e)
			}
		}
		for _, w := range report.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}
}

func validateUsage() {
	fmt.Fprintf(os.Stderr, `Usage: edifactcodec validate [options] <file>

Validates an EDIFACT interchange's structural invariants: UNA/UNB/UNZ
and UNG/UNE/UNH/UNT count and reference agreement.

Options:
  --format string   Output format: text, json (default "text")
  --help            Show this help message

Exit codes:
  0  Interchange is structurally valid
  1  Interchange has structural errors
  2  Usage or I/O error

Examples:
  edifactcodec validate order.edi
  edifactcodec validate --format json order.edi
`)
}
