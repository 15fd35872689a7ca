package catalog

import "embed"

// builtinFS embeds the built-in recognizers directory.
// Files are read in lexical order, so the numeric prefixes fix catalog order.
//
//go:embed recognizers/*.yml
var builtinFS embed.FS
