package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomyedwab/sqlite-tools/httpserver"
	"github.com/tomyedwab/sqlite-tools/mcpserver"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve the MCP protocol on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dispatcher, err := openDispatcher()
		if err != nil {
			return err
		}
		defer db.Close()

		return mcpserver.ServeStdio(mcpserver.New(dispatcher, Version))
	},
}

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve the HTTP REST facade",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dispatcher, err := openDispatcher()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return httpserver.New(dispatcher, db).Serve(ctx, httpPort)
	},
}

var dualCmd = &cobra.Command{
	Use:   "dual",
	Short: "Serve MCP on stdio and the HTTP facade in one process",
	Long:  `Runs both transports against one shared database handle. The process exits when the stdio stream closes; the HTTP listener shuts down gracefully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dispatcher, err := openDispatcher()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		httpErr := make(chan error, 1)
		go func() {
			httpErr <- httpserver.New(dispatcher, db).Serve(ctx, httpPort)
		}()

		err = mcpserver.ServeStdio(mcpserver.New(dispatcher, Version))

		// Stop the HTTP listener once the stdio stream is done.
		cancel()
		if herr := <-httpErr; herr != nil {
			log.Printf("HTTP server error: %v", herr)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(dualCmd)
}
