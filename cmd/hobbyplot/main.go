// Command hobbyplot fits Hobby curves through the points of a sketch
// description and renders the result.
//
// Usage:
//
//	hobbyplot [flags] SKETCH
//
// SKETCH is a TOML or YAML file. Without --svg or --png, the SVG rendering is
// written to standard output. A summary of every contour, including its
// self-intersections and crossings with other contours, is logged to standard
// error.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"honnef.co/go/hobby"
	"honnef.co/go/hobby/internal/sketch"
)

type options struct {
	svgPath string
	pngPath string
	seed    uint64
	scale   float64
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "hobbyplot [flags] SKETCH",
		Short:        "Fit Hobby curves through a sketch and render them",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.svgPath, "svg", "", "write the SVG rendering to `file`")
	flags.StringVar(&opts.pngPath, "png", "", "write the PNG rendering to `file`")
	flags.Uint64Var(&opts.seed, "seed", 0, "override the seed of the sketch")
	flags.Float64Var(&opts.scale, "scale", 1, "pixels per unit of the PNG rendering")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")
	return cmd
}

func run(cmd *cobra.Command, path string, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	hobby.SetLogger(log)
	defer hobby.SetLogger(nil)

	s, err := sketch.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		s.Seed = opts.seed
	}
	items, err := sketch.Build(s, nil)
	if err != nil {
		return err
	}
	sketch.Analyze(items).Log(log)

	if opts.svgPath == "" && opts.pngPath == "" {
		return sketch.WriteSVG(cmd.OutOrStdout(), s, items)
	}
	if opts.svgPath != "" {
		err := writeFile(opts.svgPath, func(w io.Writer) error {
			return sketch.WriteSVG(w, s, items)
		})
		if err != nil {
			return err
		}
		log.Info("wrote SVG", slog.String("path", opts.svgPath))
	}
	if opts.pngPath != "" {
		err := writeFile(opts.pngPath, func(w io.Writer) error {
			return sketch.WritePNG(w, s, items, opts.scale)
		})
		if err != nil {
			return err
		}
		log.Info("wrote PNG", slog.String("path", opts.pngPath))
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
