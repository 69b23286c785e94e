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
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/iconbake/iconbake"
	"github.com/iconbake/iconbake/config"
	"github.com/k1LoW/errors"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [SOURCE_IMAGE]",
	Short: "check that everything needed to bake icons is in place",
	Long:  `check that everything needed to bake icons is in place.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check configuration file
		cmd.Print("🔧 Checking configuration file ... ")
		cfg, err := config.Load(profile)
		if err != nil {
			yellow.Println("⚠️ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			cfg = &config.Config{}
			allOK = false
		} else {
			green.Println("✓ OK")
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

		// 2. Check source image
		cmd.Print("🖼  Checking source image ... ")
		src, err := iconbake.NewImage(source)
		switch {
		case errors.Is(err, os.ErrNotExist):
			red.Println("✗ NOT FOUND")
			cmd.Printf("   Expected at: %s\n", source)
			allOK = false
		case err != nil:
			red.Println("✗ NOT DECODABLE")
			cmd.Printf("   Error decoding image: %v\n", err)
			allOK = false
		default:
			b, err := src.Bounds()
			if err != nil {
				red.Println("✗ NOT DECODABLE")
				cmd.Printf("   Error decoding image: %v\n", err)
				allOK = false
			} else {
				green.Println("✓ OK")
				cmd.Printf("   Source image: %s (%dx%d pixels)\n", source, b.Dx(), b.Dy())
			}
		}

		// 3. Check output directory
		cmd.Print("📁 Checking output directory ... ")
		if fi, err := os.Stat(outDir); err != nil || !fi.IsDir() {
			red.Println("✗ NOT FOUND")
			cmd.Printf("   Expected at: %s (it is never created automatically)\n", outDir)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Output directory: %s\n", outDir)
		}

		// 4. Check optimize command (optional). It runs through the shell
		// at generate time, so resolve it with the shell as well.
		if cfg.OptimizeCommand != "" {
			cmd.Print("🛠  Checking optimize command ... ")
			if !iconbake.CommandResolvable(cmd.Context(), cfg.OptimizeCommand) {
				yellow.Println("⚠️ NOT RESOLVABLE")
				cmd.Printf("   Command: %s\n", cfg.OptimizeCommand)
				cmd.Println("   The shell could not resolve the leading executable")
				allOK = false
			} else {
				green.Println("✓ OK")
				cmd.Printf("   Command: %s\n", cfg.OptimizeCommand)
			}
		}

		// 5. Compare the largest generated icon with the source, if present
		if src != nil {
			table := iconbake.AppleAppIcon
			if len(cfg.Sizes) > 0 {
				table = sizeTableFromConfig(cfg.Sizes)
			}
			if largest, ok := table.Largest(); ok {
				iconPath := filepath.Join(outDir, largest.Filename)
				if _, err := os.Stat(iconPath); err == nil {
					cmd.Print("🔍 Checking generated icons ... ")
					icon, err := iconbake.NewImage(iconPath)
					if err != nil {
						red.Println("✗ NOT DECODABLE")
						cmd.Printf("   Error decoding %s: %v\n", iconPath, err)
						allOK = false
					} else if !src.Equivalent(icon) {
						yellow.Println("⚠️ DIFFERS FROM SOURCE")
						cmd.Printf("   %s does not look like the source image; regenerate with `iconbake gen`\n", iconPath)
					} else {
						green.Println("✓ OK")
						cmd.Printf("   %s matches the source image\n", iconPath)
					}
				}
			}
		}

		// Final message
		cmd.Println()
		if allOK {
			bold.Println("🎉 Everything is in place. Run `iconbake gen` to bake the icon set.")
			return nil
		}
		bold.Println("Fix the issues above, then run doctor again.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().StringVarP(&out, "out", "o", defaultOut, "output directory (must exist)")
}
