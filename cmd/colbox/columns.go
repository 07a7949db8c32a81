package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newColumnsCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "columns <file>",
		Short: "Print the column boxes of each page",
		Long: `Reconstruct the text column boxes of each page. Boxes are printed in
the order the row cleaner leaves them; coordinates are top-down page units.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.extractor(args[0])
			if err != nil {
				return err
			}
			pages, warnings, err := ext.Columns()
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), warnings)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(pages)
			}
			for _, p := range pages {
				if _, err := out.Write([]byte(columnTable(p))); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the columns as JSON")
	return cmd
}
