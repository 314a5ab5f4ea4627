// Package gamedata provides the embedded bestiary and utilities for loading it.
package gamedata

import "embed"

// dataFS embeds the JSON tables in this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
