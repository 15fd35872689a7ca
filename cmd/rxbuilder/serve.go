package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/rxbuilder/pkg/serve"
	"github.com/spf13/cobra"
)

var serveFlags recognizerFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as streaming server for editor and dashboard integration",
	Long: `Run rxbuilder as a long-lived streaming server that accepts session
requests via stdin and writes responses to stdout using NDJSON format.

The process loads recognizers once at startup and keeps one session (text,
selections, options) until stdin closes or SIGTERM is received.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveFlags.register(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	sc, err := serveFlags.newScanner(0)
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create and run server
	srv := serve.NewServer(newSession(sc), cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	return srv.Run(ctx)
}
