// Command contact is a terminal front end for the portfolio contact form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dukerupert/folio/internal"
)

const appName = "contact"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Send and troubleshoot portfolio contact messages",
		Long: `contact drives the same form controller as the site's contact section:
drafts are validated locally, then posted once to the mail relay.

It also checks the relay's mail settings and the contact animation asset.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			internal.LoadDotEnv()
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(sendCmd(&logLevel))
	cmd.AddCommand(checkSMTPCmd(&logLevel))
	cmd.AddCommand(animationCmd())

	return cmd
}
