package iconbake

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/k1LoW/errors"
)

// DefaultScaleFactor enlarges the content 20% beyond the target before the
// center crop, producing the edge-to-edge look app icon guidelines expect.
const DefaultScaleFactor = 1.2

// Sentinel errors for preflight failures. Both are detected before any file
// is written; the output directory is never created on the caller's behalf.
var (
	ErrSourceMissing    = errors.New("source image not found")
	ErrOutputDirMissing = errors.New("output directory not found")
)

// Generator renders a size table of icons from a single source image.
type Generator struct {
	scaleFactor float64
	table       SizeTable
	optimizeCmd string
	logger      *slog.Logger
}

type Option func(*Generator) error

func WithScaleFactor(f float64) Option {
	return func(g *Generator) error {
		if f <= 0 {
			return fmt.Errorf("invalid scale factor: %v", f)
		}
		g.scaleFactor = f
		return nil
	}
}

func WithSizeTable(t SizeTable) Option {
	return func(g *Generator) error {
		if len(t) == 0 {
			return fmt.Errorf("size table is empty")
		}
		g.table = t
		return nil
	}
}

// WithOptimizeCommand sets a shell command run on each generated file,
// expanded with {{file}}, {{size}} and {{env.X}} template variables.
func WithOptimizeCommand(cmd string) Option {
	return func(g *Generator) error {
		g.optimizeCmd = cmd
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

func New(opts ...Option) (_ *Generator, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	g := &Generator{
		scaleFactor: DefaultScaleFactor,
		table:       AppleAppIcon,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return g, nil
}

// SizeTable returns the table the generator iterates.
func (g *Generator) SizeTable() SizeTable {
	return g.table
}

// Generate renders every slot of the size table into outDir, in slot order.
// Slots without a file name are skipped. The first failing slot aborts the
// run: a broken render usually means the source itself is bad, so slots after
// it are left untouched.
func (g *Generator) Generate(ctx context.Context, src *Image, outDir string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if fi, serr := os.Stat(outDir); serr != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputDirMissing, outDir)
	}
	logger := g.logger.With(slog.String("run_id", uuid.New().String()))
	img, err := src.NRGBA()
	if err != nil {
		return fmt.Errorf("failed to decode source image: %w", err)
	}
	b := img.Bounds()
	logger.Info("rendering icons",
		slog.Int("width", b.Dx()),
		slog.Int("height", b.Dy()),
		slog.Float64("scale", g.scaleFactor),
		slog.Int("slots", len(g.table)))
	count := 0
	for _, e := range g.table {
		if e.Filename == "" {
			continue
		}
		if err := g.generateOne(ctx, img, e, outDir); err != nil {
			logger.Error("failed to generate icon",
				slog.Int("size", e.Px),
				slog.String("filename", e.Filename),
				slog.Any("error", err))
			return fmt.Errorf("failed to generate %dx%d icon: %w", e.Px, e.Px, err)
		}
		logger.Info("generated icon",
			slog.Int("size", e.Px),
			slog.String("filename", e.Filename))
		count++
	}
	logger.Info("generate completed", slog.Int("count", count))
	return nil
}

func (g *Generator) generateOne(ctx context.Context, src *image.NRGBA, e Entry, outDir string) error {
	icon, err := renderIcon(src, e.Px, g.scaleFactor)
	if err != nil {
		return err
	}
	path := filepath.Join(outDir, e.Filename)
	if err := savePNG(icon, path); err != nil {
		return err
	}
	if g.optimizeCmd != "" {
		if err := g.optimize(ctx, e, path); err != nil {
			return err
		}
	}
	return nil
}
