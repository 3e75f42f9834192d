// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.lookup/config.toml, with Watch
//     for live reload
package file
