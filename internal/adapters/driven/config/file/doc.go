// Package file provides file-based configuration: the JSON5 site
// config describing sources and mappings (with .local override
// merging), and the TOML settings store for tool-level defaults.
package file
