package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/edifactkit/edifact"
)

func runGenerate(args []string) int {
	generateFlags := flag.NewFlagSet("generate", flag.ExitOnError)
	var sender, recipient string
	var outFile string
	generateFlags.StringVar(&sender, "sender", "", "UNB sender id (required)")
	generateFlags.StringVar(&recipient, "recipient", "", "UNB recipient id (required)")
	generateFlags.StringVar(&outFile, "output", "", "Output file (default stdout)")
	generateFlags.Usage = generateUsage
	_ = generateFlags.Parse(args)

	if generateFlags.NArg() != 1 || sender == "" || recipient == "" {
		generateUsage()
		return exitError
	}

	filename := generateFlags.Arg(0)
	input, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	var order edifact.Order
	if err := json.Unmarshal(input, &order); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid order JSON: %v\n", err)
		return exitError
	}

	rec := edifact.OrderToOrders(order)
	rec.MessageReferenceNumber = "1"

	msg := edifact.GenerateOrders(rec, "D", "96A")

	ic := edifact.BuildInterchange(
		[]edifact.Message{msg},
		edifact.PartyID{ID: sender},
		edifact.PartyID{ID: recipient},
		edifact.BuildOptions{},
	)

	cd := edifact.NewCodec(nil)
	out, err := cd.GenerateDocument(ic, edifact.NewConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	if outFile == "" {
		os.Stdout.Write(out)
		return exitOK
	}
	if err := os.WriteFile(outFile, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func generateUsage() {
	fmt.Fprintf(os.Stderr, `Usage: edifactcodec generate --sender ID --recipient ID [options] <order.json>

Generates an EDIFACT ORDERS interchange from a canonical order JSON
document (the shape produced by the mapper's Order type).

Options:
  --sender string      UNB sender id (required)
  --recipient string   UNB recipient id (required)
  --output string      Output file (default stdout)
  --help                Show this help message

Exit codes:
  0  Generated successfully
  2  Usage, decode, or generator invariant error

Examples:
  edifactcodec generate --sender SENDER --recipient RECEIVER order.json
  edifactcodec generate --sender SENDER --recipient RECEIVER --output order.edi order.json
`)
}
