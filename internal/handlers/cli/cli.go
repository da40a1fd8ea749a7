package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/chainscope/chainscope/internal/explorer"

	"github.com/urfave/cli/v3"
)

// output is where command results are printed. Tests swap it for a buffer.
var output io.Writer = os.Stdout

// writeJSON renders a command result as indented JSON on the output stream.
func writeJSON(v any) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Run initializes and executes the chainscope CLI application.
//
// It registers all available commands, including:
//
//   - `address`: Scans recent activity involving an address.
//   - `txs`: Lists the most recent transactions.
//   - `blocks`: Lists blocks as a page, newest first.
//   - `contracts`: Lists recently deployed contracts.
//   - `stats`: Prints a snapshot of the network state.
//   - `block`: Shows a single block by height or hash.
//   - `tx`: Shows a single transaction with its receipt.
//   - `account`: Shows the current profile of an address.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - svc: The explorer service implementation backing every command.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, svc explorer.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "chainscope",
		Description:           "Command-line explorer for Ethereum-compatible ledgers, built on on-demand block scans.",
		Usage:                 "chainscope [command] [flags]",
		Commands: []*cli.Command{
			scanAddressActivityCommand(svc),
			scanRecentTransactionsCommand(svc),
			scanBlockPageCommand(svc),
			scanContractsCommand(svc),
			networkStatsCommand(svc),
			blockDetailCommand(svc),
			transactionDetailCommand(svc),
			addressDetailCommand(svc),
		},
	}

	return app.Run(ctx, os.Args)
}
