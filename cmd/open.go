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
	"os"
	"path/filepath"

	"github.com/iconbake/iconbake"
	"github.com/iconbake/iconbake/config"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "open the largest generated icon for preview",
	Long:  `open the largest generated icon for preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		outDir := defaultOut
		if cfg.Out != "" {
			outDir = cfg.Out
		}
		if cmd.Flags().Changed("out") {
			outDir = out
		}
		table := iconbake.AppleAppIcon
		if len(cfg.Sizes) > 0 {
			table = sizeTableFromConfig(cfg.Sizes)
		}
		largest, ok := table.Largest()
		if !ok {
			return fmt.Errorf("the size table has no file names to open")
		}
		path := filepath.Join(outDir, largest.Filename)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("no generated icon at %s; run `iconbake gen` first", path)
		}
		cmd.Println(path)
		return browser.OpenFile(path)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().StringVarP(&out, "out", "o", defaultOut, "output directory")
}
