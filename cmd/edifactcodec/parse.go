package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/edifactkit/edifact"
)

// ParseReport is the JSON/text shape printed by the parse subcommand.
type ParseReport struct {
	File       string        `json:"file"`
	Success    bool          `json:"success"`
	Sender     string        `json:"sender,omitempty"`
	Recipient  string        `json:"recipient,omitempty"`
	Messages   []MessageInfo `json:"messages,omitempty"`
	Errors     []string      `json:"errors,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// MessageInfo summarizes one UNH/UNT message within the interchange.
type MessageInfo struct {
	Type    string `json:"type"`
	Version string `json:"version"`
	Number  string `json:"number,omitempty"`
}

func runParse(args []string) int {
	parseFlags := flag.NewFlagSet("parse", flag.ExitOnError)
	var format string
	var verbose bool
	parseFlags.StringVar(&format, "format", "text", "Output format: text, json")
	parseFlags.BoolVar(&verbose, "verbose", false, "Log parse warnings and errors to stderr")
	parseFlags.Usage = parseUsage
	_ = parseFlags.Parse(args)

	if parseFlags.NArg() != 1 {
		parseUsage()
		return exitError
	}

	filename := parseFlags.Arg(0)
	input, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	var logger *logrus.Logger
	if verbose {
		logger = logrus.New()
	}
	cd := edifact.NewCodec(logger)

	report := ParseReport{File: filename}
	res := cd.ParseDocument(input)
	report.Success = res.Success
	for _, e := range res.Errors {
		report.Errors = append(report.Errors, e.String())
	}
	for _, w := range res.Warnings {
		report.Warnings = append(report.Warnings, w.String())
	}

	if res.Success {
		sender, recipient, _ := edifact.PeekSenderRecipient(input)
		report.Sender = sender
		report.Recipient = recipient
		for _, m := range res.Interchange.AllMessages() {
			report.Messages = append(report.Messages, MessageInfo{
				Type:    edifact.GetMessageType(m),
				Version: edifact.GetDocumentVersion(m),
				Number:  m.Header.MessageReferenceNumber,
			})
		}
	}

	switch format {
	case "json":
		outputParseJSON(report)
	case "text":
		outputParseText(report)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (use 'text' or 'json')\n", format)
		return exitError
	}

	if !report.Success {
		return exitViolations
	}
	return exitOK
}

func outputParseText(report ParseReport) {
	if !report.Success {
		fmt.Printf("✗ %s failed to parse\n", report.File)
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
		return
	}
	fmt.Printf("✓ %s: %s -> %s, %d message(s)\n", report.File, report.Sender, report.Recipient, len(report.Messages))
	for _, m := range report.Messages {
		fmt.Printf("  - %s (%s) ref %s\n", m.Type, m.Version, m.Number)
	}
	for _, w := range report.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}

func outputParseJSON(report ParseReport) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

func parseUsage() {
	fmt.Fprintf(os.Stderr, `Usage: edifactcodec parse [options] <file>

Parses an EDIFACT interchange and prints a summary of its envelope and
messages.

Options:
  --format string   Output format: text, json (default "text")
  --verbose         Log parse warnings and errors to stderr
  --help            Show this help message

Exit codes:
  0  Parsed successfully
  1  Parse produced structural errors
  2  Usage or I/O error

Examples:
  edifactcodec parse order.edi
  edifactcodec parse --format json order.edi
`)
}
