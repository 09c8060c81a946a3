// Package config provides the configuration of the richedit host.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. RICHEDIT_* environment variables
//
// The resulting Config is validated before it is returned. The watcher
// sub-package reloads the file when it changes on disk.
package config
