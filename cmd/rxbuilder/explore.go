package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/praetorian-inc/rxbuilder/pkg/explore"
	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	exploreFlags  recognizerFlags
	exploreFile   string
	exploreAuto   bool
	exploreFormat string
	exploreBudget time.Duration
	exploreColor  string
)

var exploreCmd = &cobra.Command{
	Use:   "explore [text]",
	Short: "Build a regular expression interactively",
	Long: `Launch an interactive TUI to build a pattern from sample text.

Features:
  - Cursor navigation over the text (hjkl, w/b between matches)
  - Ranked candidate interpretations at the cursor
  - Select, deselect, reanchor and edit emitted patterns
  - Live pattern preview with flag and anchor toggles

The TUI draws on stderr; the final pattern is printed to stdout on exit, so
the command can be used inside $(...). Reads the text from --file, the
argument, or stdin.`,
	Example: `  rxbuilder explore "2024-01-15 ERROR disk full"
  tail -1 app.log | rxbuilder explore --auto`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

func init() {
	registerExploreFlags(exploreCmd)
	rootCmd.AddCommand(exploreCmd)
}

func registerExploreFlags(cmd *cobra.Command) {
	exploreFlags.register(cmd)
	cmd.Flags().StringVar(&exploreFile, "file", "", "Read the sample text from a file")
	cmd.Flags().BoolVar(&exploreAuto, "auto", false, "Start with the best non-overlapping matches selected")
	cmd.Flags().StringVar(&exploreFormat, "format", "human", "Output format on exit: human, json")
	cmd.Flags().DurationVar(&exploreBudget, "budget", 0, "Per-recognizer execution budget (default from config, 25ms)")
	cmd.Flags().StringVar(&exploreColor, "color", "auto", "Color for the final output: auto, always, never")
}

// exploreText resolves the sample text from --file, the argument or stdin.
func exploreText(cmd *cobra.Command, args []string) (string, error) {
	if exploreFile == "" {
		return readText(cmd, args)
	}
	if len(args) > 0 {
		return "", fmt.Errorf("--file and a text argument are mutually exclusive")
	}
	data, err := os.ReadFile(exploreFile)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", exploreFile, err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// prepareExplore builds the session the TUI starts from.
func prepareExplore(cmd *cobra.Command, args []string) (*session.Session, error) {
	text, err := exploreText(cmd, args)
	if err != nil {
		return nil, err
	}

	sc, err := exploreFlags.newScanner(exploreBudget)
	if err != nil {
		return nil, err
	}

	sess := newSession(sc)
	sess.SetText(text)
	if exploreAuto {
		sess.AutoSelect()
	}
	return sess, nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	sess, err := prepareExplore(cmd, args)
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithOutput(cmd.ErrOrStderr()),
	}
	// Keys come from the terminal even when the text was piped in.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(explore.New(sess), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explore TUI: %w", err)
	}

	pattern := sess.Compose()
	switch exploreFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(composeOutput{
			Text:       sess.Text(),
			Selections: sess.Selections(),
			Pattern:    pattern,
		})
	case "human":
		return outputComposeHuman(cmd, exploreColor, sess.Selections(), pattern)
	default:
		return fmt.Errorf("unknown output format: %s", exploreFormat)
	}
}
