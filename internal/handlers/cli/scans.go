package cli

import (
	"context"

	"github.com/chainscope/chainscope/internal/explorer"

	"github.com/urfave/cli/v3"
)

// scanAddressActivityCommand returns a CLI command that scans the recent
// block window for transactions involving an address.
//
// Usage example:
//
//	chainscope address --address 0xABC123... --limit 25
func scanAddressActivityCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "address",
		Description: "Scan the recent block window for transactions sent or received by an address.",
		Usage:       "Lists recent activity for an address, newest first. Must provide the address.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Ledger address to scan activity for (0x-prefixed)",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of transactions to return",
				Value: 25,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			result, err := svc.ScanAddressActivity(ctx, c.String("address"), int(c.Int("limit")))
			if err != nil {
				return err
			}
			return writeJSON(result)
		},
	}
}

// scanRecentTransactionsCommand returns a CLI command that lists the most
// recent transactions on the ledger.
//
// Usage example:
//
//	chainscope txs --limit 25
func scanRecentTransactionsCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "txs",
		Description: "List the most recent transactions on the ledger, newest first.",
		Usage:       "Lists recent transactions across the latest blocks.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of transactions to return",
				Value: 25,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			result, err := svc.ScanRecentTransactions(ctx, int(c.Int("limit")))
			if err != nil {
				return err
			}
			return writeJSON(result)
		},
	}
}

// scanBlockPageCommand returns a CLI command that lists blocks as a
// descending page.
//
// Usage example:
//
//	chainscope blocks --page 1 --page-size 10
func scanBlockPageCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "blocks",
		Description: "List blocks as a page running from the chain head downwards.",
		Usage:       "Lists a page of recent blocks, newest first.",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "page",
				Usage: "1-based page number",
				Value: 1,
			},
			&cli.UintFlag{
				Name:  "page-size",
				Usage: "Number of blocks per page",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			result, err := svc.ScanBlockPage(ctx, uint64(c.Uint("page")), uint64(c.Uint("page-size")))
			if err != nil {
				return err
			}
			return writeJSON(result)
		},
	}
}

// scanContractsCommand returns a CLI command that lists contracts deployed in
// the recent block window.
//
// Usage example:
//
//	chainscope contracts --limit 25
func scanContractsCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "contracts",
		Description: "Scan the recent block window for contract deployments, deduplicated by address.",
		Usage:       "Lists recently deployed contracts, newest first.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of contracts to return",
				Value: 25,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			result, err := svc.ScanContracts(ctx, int(c.Int("limit")))
			if err != nil {
				return err
			}
			return writeJSON(result)
		},
	}
}
