package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yatube",
	Short: "Yatube - a server-rendered blogging platform",
	Long: `Yatube lets users write posts, file them under groups, comment on
each other's posts and follow their favourite authors.

Configuration is read from the environment, optionally from a .env file
in the working directory (DB_DRIVER, DB_DSN, JWT_SECRET, CACHE_BACKEND, ...).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
