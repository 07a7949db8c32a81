package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/colbox/render"
)

func newRenderCmd(opts *options) *cobra.Command {
	var out string
	var scale float64

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw the column boxes over the page geometry",
		Long: `Write an HTML report (--out report.html) with an SVG of each page and its
text in reading order, or PNG images (--out page.png) of each page with
panels, images, text blocks, vertical text and column boxes drawn in. With
more than one page, PNG files are numbered: page-1.png, page-2.png, ...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.extractor(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scale") {
				if scale <= 0 {
					return fmt.Errorf("scale must be positive, got %g", scale)
				}
				rc := ext.RenderConfig()
				rc.Scale = scale
				ext = ext.WithRenderConfig(rc)
			}
			rc := ext.RenderConfig()

			kind := strings.ToLower(filepath.Ext(out))
			if kind != ".html" && kind != ".png" {
				return fmt.Errorf("unsupported output %q: use a .html or .png file name", out)
			}

			rep, warnings, err := ext.Report()
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), warnings)

			if kind == ".html" {
				return writeFile(out, func(f *os.File) error {
					return render.HTML(f, rep)
				})
			}

			for _, p := range rep.Pages {
				name := out
				if len(rep.Pages) > 1 {
					name = fmt.Sprintf("%s-%d.png", strings.TrimSuffix(out, filepath.Ext(out)), p.Number)
				}
				err := writeFile(name, func(f *os.File) error {
					return render.PNG(f, p.Overlay, rc)
				})
				if err != nil {
					return fmt.Errorf("page %d: %w", p.Number, err)
				}
				opts.log.WithField("file", name).Info("page rendered")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "colbox.html", "Output file (.html or .png)")
	cmd.Flags().Float64Var(&scale, "scale", 1.0, "Pixels per page unit for PNG output")
	return cmd
}

// writeFile creates name and passes it to fn, closing it afterwards
func writeFile(name string, fn func(f *os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
