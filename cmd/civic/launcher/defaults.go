package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before config files and flags override them.

type Defaults struct {
	Node    NodeDefaults
	Network NetworkDefaults
	Miner   MinerDefaults
	Metrics MetricsDefaults
	Logging LoggingDefaults
}

// NodeDefaults captures top-level node settings.
type NodeDefaults struct {
	DataDir string // filesystem root for chaindata; "~" expands to the home directory
	Name    string // identity used in logs
	Preset  string // resource profile, see integration.GetPresetByName
}

// NetworkDefaults selects the consensus rules.
type NetworkDefaults struct {
	Name        string // built-in network: main, test or fake
	GenesisFile string // TOML genesis; takes precedence over Name when set
}

// MinerDefaults tunes the devnet sequencer.
type MinerDefaults struct {
	Threads   int    // 0 means one per CPU
	Etherbase string // reward address, hex
	Blocks    uint64 // 0 means run until interrupted
}

type MetricsDefaults struct {
	Enable   bool   // expose Prometheus metrics
	HTTPAddr string // interface the metrics server binds to
	HTTPPort int    // default 6060
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    // 0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace
	Format    string // text or json
	Color     bool   // ANSI colors in text output
	SentryDSN string // errors and above go to Sentry when set
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Node: NodeDefaults{
			DataDir: "~/.civic",
			Name:    "civic",
			Preset:  "lite",
		},
		Network: NetworkDefaults{
			Name: "fake",
		},
		Miner: MinerDefaults{
			Etherbase: "0x000000000000000000000000000000000000c1c1",
		},
		Metrics: MetricsDefaults{
			Enable:   false,
			HTTPAddr: "127.0.0.1",
			HTTPPort: 6060,
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     true,
		},
	}
}
