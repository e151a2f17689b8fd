// Package config loads and validates slateprep configuration.
//
// Configuration comes from a TOML file (default ~/.config/slateprep/
// config.toml, or slateprep.toml in the working directory) layered over
// repository defaults. All path fields are expanded and absolute after
// Load returns.
package config
