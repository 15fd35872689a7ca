package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/praetorian-inc/rxbuilder/pkg/resolver"
	"github.com/praetorian-inc/rxbuilder/pkg/scanner"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"github.com/spf13/cobra"
)

var (
	scanFlags  recognizerFlags
	scanFormat string
	scanBudget time.Duration
	scanColor  string
)

var scanCmd = &cobra.Command{
	Use:   "scan [text]",
	Short: "List every interpretation found in a line of text",
	Long: `Scan text with every recognizer and list the matches, grouped by the
region of text they cover and ranked best first within each group.
Reads the text from stdin when the argument is "-" or omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	registerScanFlags(scanCmd)
}

func registerScanFlags(cmd *cobra.Command) {
	scanFlags.register(cmd)
	cmd.Flags().StringVar(&scanFormat, "format", "human", "Output format: human, json")
	cmd.Flags().DurationVar(&scanBudget, "budget", 0, "Per-recognizer execution budget (default from config, 25ms)")
	cmd.Flags().StringVar(&scanColor, "color", "auto", "Color output: auto, always, never")
}

// scanOutput is the JSON form of a scan
type scanOutput struct {
	Text    string                   `json:"text"`
	Matches []types.MatchView        `json:"matches"`
	Stats   []scanner.RecognizerStat `json:"stats"`
	Summary scanner.Summary          `json:"summary"`
}

func runScan(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}

	sc, err := scanFlags.newScanner(scanBudget)
	if err != nil {
		return err
	}

	result := sc.ScanDetailed(text)

	switch scanFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(scanOutput{
			Text:    text,
			Matches: types.Views(result.Matches),
			Stats:   result.Stats,
			Summary: result.Summary,
		})
	case "human":
		return outputScanHuman(cmd, text, result)
	default:
		return fmt.Errorf("unknown output format: %s", scanFormat)
	}
}

func outputScanHuman(cmd *cobra.Command, text string, result *scanner.Result) error {
	out := cmd.OutOrStdout()
	s := resolveStyles(scanColor)
	runes := []rune(text)

	fmt.Fprintf(out, "%s %d matches (%d recognizers: %d completed, %d skipped)\n",
		s.heading.Sprint("Scan:"),
		len(result.Matches),
		result.Summary.TotalRecognizers,
		result.Summary.Completed,
		result.Summary.Skipped)

	for _, stat := range result.Stats {
		if stat.Status == scanner.RecognizerBudgetExceeded || stat.Status == scanner.RecognizerError {
			fmt.Fprintf(out, "%s %s %s\n",
				s.warning.Sprint("Warning:"),
				s.id.Sprint(stat.RecognizerID),
				s.warning.Sprint(stat.Status))
		}
	}

	if len(result.Matches) == 0 {
		fmt.Fprintf(out, "\nNo matches.\n")
		return nil
	}

	for _, g := range resolver.Groups(result.Matches) {
		fmt.Fprintf(out, "\n%s %s\n",
			s.heading.Sprintf("[%d,%d)", g.Start, g.End),
			s.match.Sprintf("%q", types.Slice(runes, g.Start, g.End)))

		for _, m := range g.Matches {
			name := m.RecognizerID()
			emit := ""
			if m.Recognizer != nil {
				name = m.Recognizer.Name
				emit = m.Recognizer.Emit
			}
			fmt.Fprintf(out, "    %s %s %s %s %s\n",
				s.id.Sprintf("%-18s", m.RecognizerID()),
				s.name.Sprint(name),
				s.metadata.Sprintf("p%d [%d,%d)", m.Priority(), m.Start, m.End),
				s.match.Sprintf("%q", m.Text),
				s.pattern.Sprint(emit))
		}
	}

	return nil
}
