package launcher

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-civic/flags"
	"github.com/rony4d/go-civic/integration"
)

var app = newApp()

func newApp() *cli.App {
	a := flags.NewApp()
	a.Flags = flags.AllFlags()
	a.Action = runNode
	a.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Run the in-process devnet: initialize, mine and submit blocks",
			Flags:  flags.AllFlags(),
			Action: runNode,
		},
		{
			Name:      "genesis",
			Usage:     "Print the genesis of the selected network as TOML",
			ArgsUsage: "[file]",
			Flags:     append(flags.NetworkFlags(), flags.CommonFlags()...),
			Action:    dumpGenesis,
		},
		{
			Name:   "dumpconfig",
			Usage:  "Print the merged node configuration as TOML",
			Flags:  flags.AllFlags(),
			Action: dumpConfig,
		},
	}
	return a
}

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

func runNode(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	log, err := makeLogger(cfg.Node.Logging, os.Stderr)
	if err != nil {
		return err
	}
	g, err := loadGenesis(cfg.Network)
	if err != nil {
		return err
	}

	node, err := integration.MakeNode(integration.Config{
		DataDir:      cfg.Node.DataDir,
		Preset:       cfg.Preset,
		Coinbase:     cfg.Miner.Etherbase,
		MinerThreads: cfg.Miner.Threads,
	}, g, log.WithField("node", cfg.Node.Name))
	if err != nil {
		return err
	}
	defer node.Close()

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if node.Metrics != nil {
		go func() {
			if err := node.Metrics.Run(sigctx, node.Engine); err != nil {
				log.WithError(err).Error("Metrics feed stopped")
			}
		}()
		go func() {
			if err := node.Metrics.Serve(sigctx, cfg.Metrics.ListenAddr()); err != nil {
				log.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	log.WithFields(logrus.Fields{
		"network":  g.Rules.Name,
		"preset":   cfg.Preset.Name,
		"pow":      node.Engine.Hasher().Name(),
		"coinbase": node.Devnet.Coinbase(),
		"threads":  cfg.Miner.Threads,
	}).Info("Starting devnet")

	if err := node.Devnet.Run(sigctx, cfg.Miner.Blocks); err != nil {
		return err
	}
	st, err := node.Engine.State()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"block":  st.LastInitialized,
		"supply": st.TotalSupply,
	}).Info("Devnet stopped")
	return nil
}

func dumpGenesis(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	g, err := loadGenesis(cfg.Network)
	if err != nil {
		return err
	}
	if path := ctx.Args().First(); path != "" {
		b, err := g.Bytes()
		if err != nil {
			return err
		}
		return os.WriteFile(path, b, 0o644)
	}
	return g.Encode(ctx.App.Writer)
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	b, err := Dump(cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(b)
	return err
}
