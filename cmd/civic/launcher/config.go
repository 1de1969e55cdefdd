// This file maps the CLI context and the optional TOML config file onto the
// launcher Config.

package launcher

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-civic/civic/genesis"
	"github.com/rony4d/go-civic/integration"
)

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Node    NodeConfig
	Network NetworkConfig
	Preset  integration.PresetConfig
	Miner   MinerConfig
	Metrics MetricsConfig
}

type NodeConfig struct {
	DataDir string
	Name    string
	Logging LoggingConfig
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type NetworkConfig struct {
	Name        string
	GenesisFile string
}

type MinerConfig struct {
	Threads   int
	Etherbase common.Address
	Blocks    uint64
}

type MetricsConfig struct {
	Addr string
	Port int
}

// ListenAddr is the host:port the metrics server binds to.
func (m MetricsConfig) ListenAddr() string {
	return net.JoinHostPort(m.Addr, strconv.Itoa(m.Port))
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	d := DefaultConfig()
	preset, _ := integration.GetPresetByName(d.Node.Preset)
	preset.EnableMetrics = preset.EnableMetrics || d.Metrics.Enable
	return Config{
		Node: NodeConfig{
			DataDir: resolvePath(d.Node.DataDir),
			Name:    d.Node.Name,
			Logging: LoggingConfig{
				Verbosity: d.Logging.Verbosity,
				Format:    d.Logging.Format,
				Color:     d.Logging.Color,
				SentryDSN: d.Logging.SentryDSN,
			},
		},
		Network: NetworkConfig{
			Name:        d.Network.Name,
			GenesisFile: d.Network.GenesisFile,
		},
		Preset: preset,
		Miner: MinerConfig{
			Threads:   d.Miner.Threads,
			Etherbase: common.HexToAddress(d.Miner.Etherbase),
			Blocks:    d.Miner.Blocks,
		},
		Metrics: MetricsConfig{
			Addr: d.Metrics.HTTPAddr,
			Port: d.Metrics.HTTPPort,
		},
	}
}

// MakeAllConfigs merges defaults, config-file values and CLI overrides into a
// single config struct, in that order.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := ctx.String("config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Preset.DB == "leveldb" {
		if err := ensureDir(cfg.Node.DataDir); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
		return err
	}
	cfg.Node.DataDir = resolvePath(cfg.Node.DataDir)
	return nil
}

// Dump writes cfg as TOML, in the format loadConfigFile reads.
func Dump(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if ctx.IsSet("datadir") {
		cfg.Node.DataDir = resolvePath(ctx.String("datadir"))
	}
	if ctx.IsSet("identity") {
		cfg.Node.Name = ctx.String("identity")
	}

	if ctx.IsSet("log.format") {
		cfg.Node.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Node.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Node.Logging.Color = ctx.Bool("log.color")
	}
	if ctx.IsSet("sentry.dsn") {
		cfg.Node.Logging.SentryDSN = ctx.String("sentry.dsn")
	}

	if ctx.IsSet("network") {
		cfg.Network.Name = ctx.String("network")
	}
	if ctx.Bool("fakenet") {
		cfg.Network.Name = "fake"
	}
	if ctx.IsSet("genesis") {
		cfg.Network.GenesisFile = resolvePath(ctx.String("genesis"))
	}

	// the preset goes first, so the finer flags below refine it
	if ctx.IsSet("preset") {
		preset, err := integration.GetPresetByName(ctx.String("preset"))
		if err != nil {
			return err
		}
		integration.ApplyPreset(&cfg.Preset, preset)
	}
	if ctx.IsSet("db") {
		cfg.Preset.DB = ctx.String("db")
	}
	if ctx.IsSet("cache") {
		cfg.Preset.CacheMB = ctx.Int("cache")
	}
	if ctx.IsSet("pow") {
		cfg.Preset.Hasher = ctx.String("pow")
	}

	if ctx.IsSet("miner.threads") {
		cfg.Miner.Threads = ctx.Int("miner.threads")
	}
	if ctx.IsSet("miner.etherbase") {
		raw := ctx.String("miner.etherbase")
		if !common.IsHexAddress(raw) {
			return fmt.Errorf("invalid miner.etherbase: %q", raw)
		}
		cfg.Miner.Etherbase = common.HexToAddress(raw)
	}
	if ctx.IsSet("blocks") {
		cfg.Miner.Blocks = ctx.Uint64("blocks")
	}

	if ctx.Bool("metrics") {
		cfg.Preset.EnableMetrics = true
	}
	if ctx.IsSet("metrics.addr") {
		cfg.Metrics.Addr = ctx.String("metrics.addr")
	}
	if ctx.IsSet("metrics.port") {
		cfg.Metrics.Port = ctx.Int("metrics.port")
	}
	return nil
}

// loadGenesis returns the genesis file if configured, else the built-in one.
func loadGenesis(cfg NetworkConfig) (*genesis.Genesis, error) {
	if cfg.GenesisFile != "" {
		return genesis.LoadFile(cfg.GenesisFile)
	}
	return genesis.ByNetwork(cfg.Name)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
