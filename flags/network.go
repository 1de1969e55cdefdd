package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags select the consensus rules and genesis.

func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Built-in network (main|test|fake)",
			Value: "fake",
		},
		cli.BoolFlag{
			Name:  "fakenet",
			Usage: "Shorthand for --network=fake",
		},
		cli.StringFlag{
			Name:  "genesis",
			Usage: "Genesis TOML file; overrides --network",
		},
	}
}

// MinerFlags tune the in-process devnet miner.
func MinerFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "miner.threads",
			Usage: "Number of mining goroutines (0 = one per CPU)",
		},
		cli.StringFlag{
			Name:  "miner.etherbase",
			Usage: "Address receiving block rewards",
		},
		cli.Uint64Flag{
			Name:  "blocks",
			Usage: "Stop after producing this many blocks (0 = run until interrupted)",
		},
	}
}
