package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"github.com/spf13/cobra"
)

var (
	recognizersFlags  recognizerFlags
	recognizersFormat string
)

var recognizersCmd = &cobra.Command{
	Use:   "recognizers",
	Short: "Inspect recognizers",
	Long:  "Commands for listing and inspecting the recognizer catalog",
}

var recognizersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available recognizers",
	Long:  "Display all recognizers in catalog order with their IDs, names and priorities",
	Args:  cobra.NoArgs,
	RunE:  runRecognizersList,
}

func init() {
	recognizersCmd.AddCommand(recognizersListCmd)
	recognizersFlags.register(recognizersListCmd)
	recognizersListCmd.Flags().StringVar(&recognizersFormat, "format", "table", "Output format: table, json")
}

func runRecognizersList(cmd *cobra.Command, args []string) error {
	cat, err := recognizersFlags.loadCatalog()
	if err != nil {
		return err
	}

	switch recognizersFormat {
	case "json":
		return outputRecognizersJSON(cmd, cat.All())
	case "table":
		return outputRecognizersTable(cmd, cat.All())
	default:
		return fmt.Errorf("unknown output format: %s", recognizersFormat)
	}
}

func outputRecognizersJSON(cmd *cobra.Command, recognizers []*types.Recognizer) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(types.RecognizerViews(recognizers))
}

func outputRecognizersTable(cmd *cobra.Command, recognizers []*types.Recognizer) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tPriority\tEmit\tCategories\n")
	fmt.Fprintf(w, "--\t----\t--------\t----\t----------\n")

	for _, r := range recognizers {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", r.ID, r.Name, r.Priority, r.Emit, strings.Join(r.Categories, ","))
	}

	return nil
}
