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
	"strings"

	"github.com/iconbake/iconbake"
	"github.com/iconbake/iconbake/config"
	"github.com/spf13/cobra"
)

var lsSizesCmd = &cobra.Command{
	Use:   "ls-sizes",
	Short: "list the icon sizes and file names that will be generated",
	Long:  `list the icon sizes and file names that will be generated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		table := iconbake.AppleAppIcon
		if len(cfg.Sizes) > 0 {
			table = sizeTableFromConfig(cfg.Sizes)
		}
		cmd.Print(formatSizeTable(table))
		return nil
	},
}

func formatSizeTable(table iconbake.SizeTable) string {
	var b strings.Builder
	for _, e := range table {
		if e.Filename == "" {
			fmt.Fprintf(&b, "%dx%d\t(not in use)\n", e.Px, e.Px)
			continue
		}
		fmt.Fprintf(&b, "%dx%d\t%s\n", e.Px, e.Px, e.Filename)
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(lsSizesCmd)
}
