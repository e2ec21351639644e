package tileset

import "embed"

// dataFS embeds the built-in palette files at build time.
//
//go:embed *.json
var dataFS embed.FS
