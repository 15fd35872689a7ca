package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/praetorian-inc/rxbuilder/pkg/composer"
	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"github.com/spf13/cobra"
)

var (
	composeFlags      recognizerFlags
	composeAuto       bool
	composeSelect     []string
	composeFormat     string
	composeBudget     time.Duration
	composeColor      string
	composeIgnoreCase bool
	composeMultiline  bool
	composeDotAll     bool
	composeWholeLine  bool
	composeLowercase  bool
)

var composeCmd = &cobra.Command{
	Use:   "compose [text]",
	Short: "Compose a regular expression from a line of text",
	Long: `Compose a regular expression from text. Chosen matches contribute their
recognizer's pattern; everything else is escaped and matched literally.

Choose matches with --select recognizer@start (repeatable), or let --auto pick
the best non-overlapping ones. Explicit selections are applied first.
Reads the text from stdin when the argument is "-" or omitted.`,
	Example: `  rxbuilder compose --auto "2024-01-15 ERROR disk full"
  rxbuilder compose --select net.ipv4@7 --whole-line "Server 192.168.1.1 responded"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompose,
}

func init() {
	registerComposeFlags(composeCmd)
}

func registerComposeFlags(cmd *cobra.Command) {
	composeFlags.register(cmd)
	cmd.Flags().BoolVar(&composeAuto, "auto", false, "Select the best non-overlapping matches automatically")
	cmd.Flags().StringArrayVar(&composeSelect, "select", nil, "Select a match as recognizer@start (repeatable)")
	cmd.Flags().StringVar(&composeFormat, "format", "human", "Output format: human, json")
	cmd.Flags().DurationVar(&composeBudget, "budget", 0, "Per-recognizer execution budget (default from config, 25ms)")
	cmd.Flags().StringVar(&composeColor, "color", "auto", "Color output: auto, always, never")
	cmd.Flags().BoolVarP(&composeIgnoreCase, "ignore-case", "i", false, "Case-insensitive flag")
	cmd.Flags().BoolVarP(&composeMultiline, "multiline", "m", false, "Multiline flag")
	cmd.Flags().BoolVarP(&composeDotAll, "dotall", "s", false, "Dot matches newline flag")
	cmd.Flags().BoolVar(&composeWholeLine, "whole-line", false, "Anchor the pattern to the whole line")
	cmd.Flags().BoolVar(&composeLowercase, "lowercase", false, "Reduce A-Za-z style ranges to a-z (with --ignore-case)")
}

// composeOutput is the JSON form of a composition
type composeOutput struct {
	Text       string             `json:"text"`
	Selections []*types.Selection `json:"selections"`
	Pattern    composer.Pattern   `json:"pattern"`
}

func runCompose(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}

	sc, err := composeFlags.newScanner(composeBudget)
	if err != nil {
		return err
	}

	sess := newSession(sc)
	sess.SetOptions(composeOptions(cmd, cfg.Options))
	sess.SetText(text)

	for _, spec := range composeSelect {
		if err := selectSpec(sess, spec); err != nil {
			return err
		}
	}
	if composeAuto {
		sess.AutoSelect()
	}

	pattern := sess.Compose()

	switch composeFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(composeOutput{
			Text:       text,
			Selections: sess.Selections(),
			Pattern:    pattern,
		})
	case "human":
		return outputComposeHuman(cmd, composeColor, sess.Selections(), pattern)
	default:
		return fmt.Errorf("unknown output format: %s", composeFormat)
	}
}

// composeOptions overlays the flags the user actually set on the configured
// defaults.
func composeOptions(cmd *cobra.Command, base types.Options) types.Options {
	opts := base
	flags := cmd.Flags()
	if flags.Changed("ignore-case") {
		opts.CaseInsensitive = composeIgnoreCase
	}
	if flags.Changed("multiline") {
		opts.Multiline = composeMultiline
	}
	if flags.Changed("dotall") {
		opts.DotMatchesNewline = composeDotAll
	}
	if flags.Changed("whole-line") {
		opts.MatchWholeLine = composeWholeLine
	}
	if flags.Changed("lowercase") {
		opts.GenerateLowercase = composeLowercase
	}
	return opts
}

// selectSpec selects the match named by "recognizer@start".
func selectSpec(sess *session.Session, spec string) error {
	id, start, err := parseSelectSpec(spec)
	if err != nil {
		return err
	}

	for _, m := range sess.Matches() {
		if m.Start == start && m.RecognizerID() == id {
			if _, err := sess.Select(m.Start, m.End, id); err != nil {
				return fmt.Errorf("selecting %s: %w", spec, err)
			}
			return nil
		}
	}
	return fmt.Errorf("selecting %s: %w", spec, types.ErrMatchNotFound)
}

func parseSelectSpec(spec string) (string, int, error) {
	i := strings.LastIndex(spec, "@")
	if i <= 0 || i == len(spec)-1 {
		return "", 0, fmt.Errorf("invalid selection %q: want recognizer@start", spec)
	}
	start, err := strconv.Atoi(spec[i+1:])
	if err != nil || start < 0 {
		return "", 0, fmt.Errorf("invalid selection %q: start must be a non-negative integer", spec)
	}
	return spec[:i], start, nil
}

func outputComposeHuman(cmd *cobra.Command, colorMode string, selections []*types.Selection, pattern composer.Pattern) error {
	out := cmd.OutOrStdout()
	s := resolveStyles(colorMode)

	for _, sel := range selections {
		fmt.Fprintf(out, "%s %s %s %s\n",
			s.heading.Sprintf("[%d,%d)", sel.Start, sel.End),
			s.id.Sprint(sel.RecognizerID),
			s.match.Sprintf("%q", sel.Text),
			s.metadata.Sprint(sel.EmitPattern))
	}
	if len(selections) > 0 {
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Pattern:"), s.pattern.Sprint(pattern.Body))
	flags := pattern.Flags
	if flags == "" {
		flags = "(none)"
	}
	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Flags:"), s.metadata.Sprint(flags))
	return nil
}
