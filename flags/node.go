package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NodeFlags holds knobs specific to the local node instance (identity, preset, storage).

func NodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "identity",
			Usage: "Custom node name used in logs",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Resource profile (lite|default|full|archive)",
			Value: "lite",
		},
		cli.StringFlag{
			Name:  "db",
			Usage: "Database backend (memory|leveldb); overrides the preset",
		},
		cli.IntFlag{
			Name:  "cache",
			Usage: "Megabytes of memory allocated to the database cache",
		},
		cli.StringFlag{
			Name:  "pow",
			Usage: "PoW oracle (keccak|argon2id); overrides the preset",
		},
	}
}

// AllFlags is every flag the run command understands.
func AllFlags() []cli.Flag {
	var all []cli.Flag
	all = append(all, CommonFlags()...)
	all = append(all, NetworkFlags()...)
	all = append(all, NodeFlags()...)
	all = append(all, MinerFlags()...)
	return all
}
