// Package file provides file-based implementations of driven port interfaces.
// These adapters read configuration from the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage that also serves
//     connection options (driven.OptionsStore), with environment overrides
//     and reload on file change.
package file
