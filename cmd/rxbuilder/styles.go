package main

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds color formatters for human output
type styles struct {
	heading  *color.Color
	id       *color.Color
	name     *color.Color
	match    *color.Color
	pattern  *color.Color
	metadata *color.Color
	warning  *color.Color
}

// newStyles creates color formatters for human output
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:  color.New(color.Bold),
		id:       color.New(color.FgHiGreen),
		name:     color.New(color.Bold, color.FgHiBlue),
		match:    color.New(color.FgYellow),
		pattern:  color.New(color.Bold, color.FgHiWhite),
		metadata: color.New(color.FgHiBlue),
		warning:  color.New(color.FgRed),
	}

	if !enabled {
		// Disable colors on all formatters
		for _, c := range []*color.Color{s.heading, s.id, s.name, s.match, s.pattern, s.metadata, s.warning} {
			c.DisableColor()
		}
	}

	return s
}

// resolveStyles decides whether to color output from a --color value:
// always, never, or auto (stdout is a terminal and NO_COLOR is unset).
func resolveStyles(mode string) *styles {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default: // "auto"
		if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	}
	return newStyles(!color.NoColor)
}
