package cli

import (
	"context"

	"github.com/chainscope/chainscope/internal/explorer"

	"github.com/urfave/cli/v3"
)

// networkStatsCommand returns a CLI command that prints a snapshot of the
// network state.
//
// Usage example:
//
//	chainscope stats
func networkStatsCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "stats",
		Description: "Probe the node for head height, gas price, peer count, and difficulty.",
		Usage:       "Prints a snapshot of the network state.",
		Action: func(ctx context.Context, c *cli.Command) error {
			stats, err := svc.NetworkStats(ctx)
			if err != nil {
				return err
			}
			return writeJSON(stats)
		},
	}
}

// blockDetailCommand returns a CLI command that resolves a single block by
// decimal height or hash.
//
// Usage example:
//
//	chainscope block --ref 12345
//	chainscope block --ref 0xABC123...
func blockDetailCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "block",
		Description: "Show a single block, addressed by decimal height or 0x-prefixed hash.",
		Usage:       "Shows a block with its transactions. Must provide the reference.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ref",
				Usage:    "Block height (decimal) or block hash (0x-prefixed)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			block, err := svc.BlockDetail(ctx, c.String("ref"))
			if err != nil {
				return err
			}
			return writeJSON(block)
		},
	}
}

// transactionDetailCommand returns a CLI command that resolves a single
// transaction with its receipt.
//
// Usage example:
//
//	chainscope tx --hash 0xABC123...
func transactionDetailCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "tx",
		Description: "Show a single transaction annotated with its receipt when resolvable.",
		Usage:       "Shows a transaction by hash. Must provide the hash.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "hash",
				Usage:    "Transaction hash (0x-prefixed)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			tx, err := svc.TransactionDetail(ctx, c.String("hash"))
			if err != nil {
				return err
			}
			return writeJSON(tx)
		},
	}
}

// addressDetailCommand returns a CLI command that prints the current profile
// of an address.
//
// Usage example:
//
//	chainscope account --address 0xABC123...
func addressDetailCommand(svc explorer.Service) *cli.Command {
	return &cli.Command{
		Name:        "account",
		Description: "Show the live profile of an address: balance, contract flag, and deployed code.",
		Usage:       "Shows the current state of an address. Must provide the address.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Ledger address to inspect (0x-prefixed)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			profile, err := svc.AddressDetail(ctx, c.String("address"))
			if err != nil {
				return err
			}
			return writeJSON(profile)
		},
	}
}
