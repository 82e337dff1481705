package config

// Package config loads and persists the application settings shared by the
// desktop UI and the CLI: subtitle style defaults, encoder controls, output
// locations, and remembered CSV column mappings. The file lives under the
// user config dir as TOML; per-run overrides operate on a Clone and never
// write back.
