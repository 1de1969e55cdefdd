package integration

import "fmt"

// Package integration provides configuration presets and assembly helpers for
// building a civic node. Presets bundle the settings that trade resources for
// speed (PoW oracle, database backend, cache sizes) into named profiles so an
// operator can spin up a node without tuning each knob.
//
// Usage:
//   cfg := integration.LitePreset()    // in-memory devnet, cheap hashing
//   cfg := integration.FullPreset()    // on-disk, memory-hard PoW
//   cfg := integration.ArchivePreset() // on-disk, large caches for explorers
//
// Each preset returns a PresetConfig that the launcher merges into its config
// before the node is assembled with MakeNode.

// PresetConfig captures the tunable parameters that vary across profiles.
type PresetConfig struct {
	Name          string // human-readable identifier (e.g., "lite", "full")
	Hasher        string // PoW oracle: "keccak" or "argon2id"
	LiteHashing   bool   // use the small-memory Argon2id parameters
	DB            string // database backend: "memory" or "leveldb"
	CacheMB       int    // leveldb block cache
	Handles       int    // leveldb open file handles
	BlockCache    int    // decoded blocks kept by the store
	EnableMetrics bool   // whether to expose the Prometheus endpoint
}

func DefaultPreset() PresetConfig {
	return PresetConfig{
		Name:          "default",
		Hasher:        "argon2id",
		LiteHashing:   false,
		DB:            "leveldb",
		CacheMB:       256,
		Handles:       256,
		BlockCache:    4096,
		EnableMetrics: false,
	}
}

// LitePreset keeps everything in memory and hashes with Keccak, for local
// development, CI and tests. Nothing survives a restart.
func LitePreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "lite"
	cfg.Hasher = "keccak"
	cfg.LiteHashing = true
	cfg.DB = "memory"
	cfg.CacheMB = 16
	cfg.Handles = 16
	cfg.BlockCache = 64
	cfg.EnableMetrics = true // cheap, and handy when debugging
	return cfg
}

// FullPreset is the production profile: memory-hard PoW and on-disk state.
func FullPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "full"
	cfg.CacheMB = 1024
	cfg.Handles = 512
	cfg.EnableMetrics = true
	return cfg
}

// ArchivePreset serves explorers and light-client provers, which walk long
// header ranges; it keeps far more decoded blocks in memory.
func ArchivePreset() PresetConfig {
	cfg := FullPreset()
	cfg.Name = "archive"
	cfg.CacheMB = 4096
	cfg.BlockCache = 64 * 1024
	return cfg
}

// GetPresetByName looks up a preset by its string identifier. It backs the
// --preset flag.
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "lite":
		return LitePreset(), nil
	case "full":
		return FullPreset(), nil
	case "archive":
		return ArchivePreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: lite, full, archive, default)", name)
	}
}

// ApplyPreset merges preset into target. Zero-valued preset fields leave the
// target unchanged; booleans are always applied.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if preset.Hasher != "" {
		target.Hasher = preset.Hasher
	}
	if preset.DB != "" {
		target.DB = preset.DB
	}
	if preset.CacheMB > 0 {
		target.CacheMB = preset.CacheMB
	}
	if preset.Handles > 0 {
		target.Handles = preset.Handles
	}
	if preset.BlockCache > 0 {
		target.BlockCache = preset.BlockCache
	}
	target.LiteHashing = preset.LiteHashing
	target.EnableMetrics = preset.EnableMetrics
	if preset.Name != "" {
		target.Name = preset.Name
	}
}
