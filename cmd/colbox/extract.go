package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExtractCmd(opts *options) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract page text in column order",
		Long: `Walk each page column by column and print its paragraphs, the text of
boxes that are not main columns, and the text printed on images. The
default output is JSON with one object per page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.extractor(args[0])
			if err != nil {
				return err
			}
			pages, warnings, err := ext.Extract()
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), warnings)

			out := cmd.OutOrStdout()
			if !plain {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(pages)
			}

			var sections []string
			for _, p := range pages {
				var parts []string
				parts = append(parts, p.Paragraphs...)
				parts = append(parts, p.Other...)
				for _, img := range p.Images {
					parts = append(parts, img.Text...)
				}
				if len(parts) > 0 {
					sections = append(sections, strings.Join(parts, "\n\n"))
				}
			}
			_, err = fmt.Fprintln(out, strings.Join(sections, "\n\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "text", false, "Write plain text instead of JSON")
	return cmd
}
