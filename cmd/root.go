// Package cmd provides the command-line interface for the sqlite-tools
// server. Subcommands select the transport: stdio for the MCP line
// protocol, http for the REST facade, dual for both in one process
// sharing a single database handle.
package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomyedwab/sqlite-tools/database"
	"github.com/tomyedwab/sqlite-tools/dispatch"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var (
	dbPath       string
	httpPort     int
	queryTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "sqlite-tools",
	Short:         "SQLite CRUD tools over MCP stdio and HTTP",
	Long:          `sqlite-tools exposes a small set of SQLite operations (list tables, describe schema, run SELECT queries, insert/update/delete rows) over the MCP stdio protocol and an HTTP REST facade.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Stdout belongs to the stdio protocol; all logging goes to stderr.
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envOr("SQLITE_DB_PATH", database.MemoryPath),
		"path to the SQLite database file, or :memory:")
	rootCmd.PersistentFlags().DurationVar(&queryTimeout, "query-timeout", database.DefaultQueryTimeout,
		"maximum execution time for a single statement")
	rootCmd.PersistentFlags().IntVar(&httpPort, "port", envOrInt("HTTP_PORT", 8080),
		"HTTP listen port")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// openDispatcher connects to the database and wires up the dispatcher. A
// connection failure here is fatal; there is no point serving requests
// without a database.
func openDispatcher() (*database.Database, *dispatch.Dispatcher, error) {
	db, err := database.Connect(dbPath)
	if err != nil {
		return nil, nil, err
	}
	db.SetQueryTimeout(queryTimeout)
	log.Printf("Connected to database: %s", dbPath)
	return db, dispatch.New(db), nil
}
