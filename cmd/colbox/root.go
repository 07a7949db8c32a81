package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/colbox"
	"github.com/tsawler/colbox/internal/config"
	"github.com/tsawler/colbox/internal/version"
	"github.com/tsawler/colbox/model"
	"github.com/tsawler/colbox/render"
)

// options holds the flags shared by every subcommand and the state built
// from them before a subcommand runs
type options struct {
	configPath    string
	logLevel      string
	pages         []int
	clips         []string
	rowTolerance  float64
	keepImageText bool

	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "colbox",
		Short: "Reconstruct the text columns of document pages",
		Long: `colbox finds the text columns of each page of a PDF (or of a JSON
capture of page primitives) and reads the page text column by column.

Configuration is read from ` + config.DefaultPath() + ` unless --config is given.
Flags override values from the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return opts.setup(cmd)
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("colbox %s\n", version.String()))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warning, error)")
	flags.IntSliceVarP(&opts.pages, "pages", "p", nil, "Pages to process, 1-based (default all)")
	flags.StringArrayVar(&opts.clips, "clip", nil, "Clip rectangle x0,y0,x1,y1 in top-down page units (repeatable)")
	flags.Float64Var(&opts.rowTolerance, "row-tolerance", 0, "Bottom edge difference for column boxes to share a row")
	flags.BoolVar(&opts.keepImageText, "keep-image-text", false, "Keep text lying on images")

	rootCmd.AddCommand(
		newColumnsCmd(opts),
		newExtractCmd(opts),
		newRenderCmd(opts),
		newDumpCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the config file, applies flag overrides and builds the logger
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("row-tolerance") {
		cfg.Columns.RowTolerance = o.rowTolerance
	}
	if flags.Changed("keep-image-text") {
		cfg.Columns.SuppressImageText = !o.keepImageText
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(level)

	o.cfg = cfg
	o.log = log
	log.WithField("config", o.configPath).Debug("configuration loaded")
	return nil
}

// extractor returns a configured extractor for path
func (o *options) extractor(path string) (*colbox.Extractor, error) {
	ext := colbox.Open(path).
		WithColumnConfig(o.cfg.ColumnConfig()).
		WithReadingOrderConfig(o.cfg.ReadingOrderConfig()).
		WithRenderConfig(render.Config{Scale: o.cfg.Render.Scale, Labels: true}).
		WithLogger(o.log).
		Pages(o.pages...)

	for _, s := range o.clips {
		clip, err := parseClip(s)
		if err != nil {
			return nil, err
		}
		ext = ext.Clip(clip)
	}
	return ext, nil
}

// parseClip parses "x0,y0,x1,y1"
func parseClip(s string) (model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.EmptyRect, fmt.Errorf("invalid clip %q: want x0,y0,x1,y1", s)
	}
	var c [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.EmptyRect, fmt.Errorf("invalid clip %q: %w", s, err)
		}
		c[i] = v
	}
	clip := model.NewRect(c[0], c[1], c[2], c[3])
	if err := clip.Validate(); err != nil {
		return model.EmptyRect, fmt.Errorf("invalid clip %q: %w", s, err)
	}
	return clip, nil
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
