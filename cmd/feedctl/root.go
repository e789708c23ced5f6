package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/udagram/feed-api/internal/client"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/models"
)

type rootOptions struct {
	apiURL    string
	token     string
	output    string
	verbose   bool
	timeout   time.Duration
	newClient func() *client.Client
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	opts.newClient = func() *client.Client {
		return client.New(client.Options{BaseURL: opts.apiURL, Token: opts.token, Timeout: opts.timeout})
	}

	cmd := &cobra.Command{
		Use:   "feedctl",
		Short: "Command line client for the Udagram feed API",
		Long: `feedctl lists, inspects and publishes Udagram feed items.
The API location and bearer token default to FEED_API_URL and FEED_API_TOKEN.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logger.InitializeConsole(level)

			if opts.output != "text" && opts.output != "json" {
				return fmt.Errorf("unknown output format %q (want text or json)", opts.output)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", envOr("FEED_API_URL", "http://localhost:8080"), "Feed API base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("FEED_API_TOKEN"), "Bearer token for protected routes")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log HTTP requests")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	cmd.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newUploadURLCmd(opts),
		newCreateCmd(opts),
		newUploadCmd(opts),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printItems(w io.Writer, items ...models.FeedItem) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tCAPTION\tURL")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", item.ID, item.CreatedAt.Format(time.DateTime), item.Caption, item.URL)
	}
	return tw.Flush()
}
