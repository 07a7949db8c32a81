package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/colbox/primitives"
	"github.com/tsawler/colbox/reader"
)

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file.pdf>",
		Short: "Write the page primitives of a PDF as JSON",
		Long: `Collect the text blocks, drawings and page size of each page and write
them as a primitives document. The output can be edited and fed back to
the other commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := reader.Open(args[0])
			if err != nil {
				return err
			}
			defer r.Close()
			r.SetLogger(opts.log)

			nums := opts.pages
			if len(nums) == 0 {
				for n := 1; n <= r.PageCount(); n++ {
					nums = append(nums, n)
				}
			}

			pages := make([]primitives.PageData, 0, len(nums))
			for _, n := range nums {
				page, err := r.Page(n)
				if err != nil {
					return err
				}
				pages = append(pages, primitives.Capture(page))
			}
			return primitives.Encode(cmd.OutOrStdout(), pages)
		},
	}
}
