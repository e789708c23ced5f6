package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List feed items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.newClient().ListFeed(cmd.Context())
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), list)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d items\n", list.Count)
			return printItems(cmd.OutOrStdout(), list.Rows...)
		},
	}
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one stored feed item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 0)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			item, err := opts.newClient().GetItem(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), item)
			}
			return printItems(cmd.OutOrStdout(), *item)
		},
	}
}

func newUploadURLCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-url <file-name>",
		Short: "Get a signed PUT URL for an object key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := opts.newClient().UploadURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"url": url})
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var caption, key string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a feed item for an already uploaded object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := opts.newClient().CreateItem(cmd.Context(), caption, key)
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), item)
			}
			return printItems(cmd.OutOrStdout(), *item)
		},
	}

	cmd.Flags().StringVar(&caption, "caption", "", "Caption text")
	cmd.Flags().StringVar(&key, "url", "", "Object key of the uploaded media")
	return cmd
}

func newUploadCmd(opts *rootOptions) *cobra.Command {
	var caption, key string

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a local image and publish it with a caption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			if key == "" {
				key = filepath.Base(path)
			}
			contentType := mime.TypeByExtension(filepath.Ext(path))

			item, err := opts.newClient().Upload(cmd.Context(), key, f, contentType, caption)
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), item)
			}
			return printItems(cmd.OutOrStdout(), *item)
		},
	}

	cmd.Flags().StringVar(&caption, "caption", "", "Caption text")
	cmd.Flags().StringVar(&key, "key", "", "Object key (default: file name)")
	_ = cmd.MarkFlagRequired("caption")
	return cmd
}
