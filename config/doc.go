// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml (or a .toml file) and validated
// using struct tags. Defaults fill whatever the file leaves out. Watch
// re-loads the file on change so the running display can pick up edits.
package config
