/*
Copyright © 2025 The iconbake authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/iconbake/iconbake"
	"github.com/iconbake/iconbake/config"
	"github.com/iconbake/iconbake/logger/mark"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

const (
	defaultSource = "app_icon_source.png"
	defaultOut    = "AppIcon.appiconset"
)

var (
	out   string
	scale float64
	watch bool
)

var genCmd = &cobra.Command{
	Use:   "gen [SOURCE_IMAGE]",
	Short: "generate all icon sizes from a source image",
	Long:  `generate all icon sizes from a source image.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		source := defaultSource
		if cfg.Source != "" {
			source = cfg.Source
		}
		if len(args) > 0 {
			source = args[0]
		}
		outDir := defaultOut
		if cfg.Out != "" {
			outDir = cfg.Out
		}
		if cmd.Flags().Changed("out") {
			outDir = out
		}
		if _, err := os.Stat(source); err != nil {
			return fmt.Errorf("%w: %s", iconbake.ErrSourceMissing, source)
		}
		if fi, err := os.Stat(outDir); err != nil || !fi.IsDir() {
			return fmt.Errorf("%w: %s", iconbake.ErrOutputDirMissing, outDir)
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		opts := []iconbake.Option{
			iconbake.WithLogger(logger),
		}
		if cmd.Flags().Changed("scale") {
			opts = append(opts, iconbake.WithScaleFactor(scale))
		} else if cfg.ScaleFactor > 0 {
			opts = append(opts, iconbake.WithScaleFactor(cfg.ScaleFactor))
		}
		if len(cfg.Sizes) > 0 {
			opts = append(opts, iconbake.WithSizeTable(sizeTableFromConfig(cfg.Sizes)))
		}
		if cfg.OptimizeCommand != "" {
			opts = append(opts, iconbake.WithOptimizeCommand(cfg.OptimizeCommand))
		}
		g, err := iconbake.New(opts...)
		if err != nil {
			return err
		}

		if watch {
			return g.Watch(ctx, source, outDir)
		}
		src, err := iconbake.NewImage(source)
		if err != nil {
			return err
		}
		if err := g.Generate(ctx, src, outDir); err != nil {
			logger.Error("generate failed", slog.Any("error", err))
			return err
		}
		return nil
	},
}

// newLogger fans events out to the console renderer and to the line recorder
// backing the error.json dump.
func newLogger() (*slog.Logger, error) {
	jsonHandler := slog.NewJSONHandler(logLines, nil)
	markHandler, err := mark.New(jsonHandler)
	if err != nil {
		return nil, err
	}
	return slog.New(slogmulti.Fanout(markHandler, jsonHandler)), nil
}

func sizeTableFromConfig(entries []config.SizeEntry) iconbake.SizeTable {
	t := make(iconbake.SizeTable, 0, len(entries))
	for _, e := range entries {
		t = append(t, iconbake.Entry{Px: e.Px, Filename: e.Filename})
	}
	return t
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringVarP(&out, "out", "o", defaultOut, "output directory (must exist)")
	genCmd.Flags().Float64VarP(&scale, "scale", "s", iconbake.DefaultScaleFactor, "content scale factor")
	genCmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when the source image changes")
}
