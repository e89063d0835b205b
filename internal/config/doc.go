// Package config provides configuration for ropekit.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← ROPEKIT_LOG_LEVEL, ROPEKIT_BUILD_CHUNK_SIZE, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← .ropekit.toml in CWD or $HOME, or --config
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Flags are applied by the caller after Load returns.
//
// # Basic Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	r := rope.Build(text, cfg.Build.ChunkSize)
package config
