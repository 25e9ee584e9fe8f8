package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the eventkit application
var rootCmd = &cobra.Command{
	Use:   "eventkit",
	Short: "Event-planning tools for AI assistants",
	Long: `eventkit exposes event-planning tools to AI assistants: Google Drive
file management, participant storage, conversation memory, sandboxed
document files, and weather lookups.

It can run as:
  - An MCP (Model Context Protocol) server (default)
  - A database bootstrap utility (initdb)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "eventkit version %s\n" .Version}}`)

	// A .env file is optional; missing files are not an error
	_ = godotenv.Load()

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newInitDBCmd())
	rootCmd.AddCommand(newVersionCmd())
}
