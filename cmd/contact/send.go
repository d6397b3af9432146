package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/folio/internal"
	"github.com/dukerupert/folio/internal/form"
)

func sendCmd(logLevel *string) *cobra.Command {
	var (
		endpoint string
		name     string
		addr     string
		message  string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Validate and send a contact message",
		Example: `  contact send --email me@example.com --message "Hello there, I am interested."
  echo "A longer message" | contact send --email me@example.com --message -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message from stdin: %w", err)
				}
				message = string(b)
			}

			logger := internal.NewLogger(os.Stderr, "dev", *logLevel)
			client := &http.Client{Timeout: timeout}

			c := form.NewController(
				form.NewHTTPSubmitter(endpoint, client, logger),
				form.WithLogger(logger),
				form.WithTransitionFunc(func(from, to form.State) {
					logger.Debug("form transition", "from", from, "to", to)
				}),
			)
			defer c.Unmount()

			c.SetName(name)
			c.SetEmail(addr)
			c.SetMessage(message)

			return submit(cmd.Context(), cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:3000"+form.DefaultEndpoint, "Relay URL")
	cmd.Flags().StringVar(&name, "name", "", "Your name (optional)")
	cmd.Flags().StringVar(&addr, "email", "", "Your email address")
	cmd.Flags().StringVar(&message, "message", "", `Message text, or "-" to read stdin`)
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout")

	return cmd
}

// submit runs one controller submission and reports it the way the site
// would: field errors with focus, or the notification.
func submit(ctx context.Context, out io.Writer, c *form.Controller) error {
	if ctx == nil {
		ctx = context.Background()
	}

	err := c.Submit(ctx)

	var verrs form.Errors
	if errors.As(err, &verrs) {
		for _, f := range verrs.Fields() {
			fmt.Fprintf(out, "%-8s %s\n", f.String()+":", verrs[f].Message)
		}
		fmt.Fprintf(out, "focus: %s\n", c.Focus())
		return errors.New("message not sent: fix the fields above")
	}

	if n, ok := c.Notification(); ok {
		fmt.Fprintf(out, "%s\n%s\n", n.Title, n.Body)
		c.Dismiss()
	}

	var sendErr *form.SendError
	if errors.As(err, &sendErr) {
		return errors.New("message not sent")
	}
	if err != nil {
		return err
	}

	return nil
}
