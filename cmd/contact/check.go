package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/folio/internal"
	"github.com/dukerupert/folio/internal/email"
	"github.com/dukerupert/folio/internal/form"
	"github.com/dukerupert/folio/internal/relay"
)

func checkSMTPCmd(logLevel *string) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check-smtp",
		Short: "Verify the relay's mail settings and SMTP login",
		Long: `check-smtp resolves mail settings from the environment (and .env) exactly
as the relay does, then dials and authenticates against the SMTP server.
Nothing is sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewLogger(os.Stderr, "dev", *logLevel)
			out := cmd.OutOrStdout()

			settings, err := relay.NewEnvSettings().Resolve()
			if err != nil {
				return fmt.Errorf("mail settings: %w", err)
			}

			fmt.Fprintf(out, "provider: %s\nfrom:     %s\nto:       %s\n", settings.Provider, settings.From, settings.To)

			sender, err := relay.NewSender(settings, logger)
			if err != nil {
				return fmt.Errorf("mail settings: %w", err)
			}
			smtp, ok := sender.(*email.SMTPSender)
			if !ok {
				fmt.Fprintln(out, "provider is not smtp, nothing to dial")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			logger.Debug("dialing smtp", "host", settings.SMTPHost, "port", settings.SMTPPort)
			if err := smtp.TestConnection(ctx); err != nil {
				return fmt.Errorf("smtp %s:%d: %w", settings.SMTPHost, settings.SMTPPort, err)
			}

			fmt.Fprintf(out, "smtp:     %s:%d ok\n", settings.SMTPHost, settings.SMTPPort)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Dial timeout")

	return cmd
}

func animationCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "animation",
		Short: "Check that the contact animation loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			blob, ok := form.LoadAnimation(ctx, nil, baseURL+form.AnimationPath)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), form.AnimationPlaceholder)
				return fmt.Errorf("animation did not load from %s", baseURL+form.AnimationPath)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "animation ok (%d bytes)\n", len(blob))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:3000", "Site origin")

	return cmd
}
