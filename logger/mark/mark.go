// Package mark is a slog handler that renders generator events as the
// human console protocol: one line per icon, ✓ on success and ✗ on failure.
package mark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

var _ slog.Handler = (*markHandler)(nil)

type markHandler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	stdout  io.Writer
}

func New(h slog.Handler) (_ *markHandler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	stdout := colorable.NewColorableStdout()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stdout))
	if err := s.Color("cyan"); err != nil {
		return nil, err
	}
	s.Suffix = " waiting for source change"
	s.Start()
	s.Disable()
	return &markHandler{
		handler: h,
		spinner: s,
		stdout:  stdout,
	}, nil
}

func (h *markHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *markHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	if r.Message == "waiting for source change" {
		if !h.spinner.Enabled() {
			h.spinner.Enable()
		}
		return nil
	}
	if h.spinner.Enabled() {
		h.spinner.Disable()
	}
	switch r.Message {
	case "rendering icons":
		var width, height int64
		var scale float64
		r.Attrs(func(attr slog.Attr) bool {
			switch attr.Key {
			case "width":
				width = attr.Value.Int64()
			case "height":
				height = attr.Value.Int64()
			case "scale":
				scale = attr.Value.Float64()
			}
			return true
		})
		return h.write(fmt.Sprintf("Source image: %dx%d pixels\nScale factor: %vx (content will be %d%% bigger)\n",
			width, height, scale, int((scale-1)*100)))
	case "generated icon":
		size, filename := iconAttrs(r)
		return h.write(fmt.Sprintf("%s Generated %dx%d -> %s\n", green("✓"), size, size, filename))
	case "failed to generate icon":
		size, _ := iconAttrs(r)
		var cause string
		r.Attrs(func(attr slog.Attr) bool {
			if attr.Key == "error" {
				cause = fmt.Sprintf("%v", attr.Value.Any())
			}
			return true
		})
		return h.write(fmt.Sprintf("%s Error generating %dx%d: %s\n", red("✗"), size, size, cause))
	case "failed to reload source image":
		var cause string
		r.Attrs(func(attr slog.Attr) bool {
			if attr.Key == "error" {
				cause = fmt.Sprintf("%v", attr.Value.Any())
			}
			return true
		})
		return h.write(fmt.Sprintf("%s Error reloading source image: %s\n", red("✗"), cause))
	case "generate completed":
		return h.write(fmt.Sprintf("\n%s All icons generated successfully!\n", green("✓")))
	case "generate failed":
		return h.write(fmt.Sprintf("\n%s Failed to generate some icons\n", red("✗")))
	case "source changed":
		return h.write(fmt.Sprintf("%s Source changed, regenerating\n", cyan("↻")))
	}
	return nil
}

func iconAttrs(r slog.Record) (size int64, filename string) {
	r.Attrs(func(attr slog.Attr) bool {
		switch attr.Key {
		case "size":
			size = attr.Value.Int64()
		case "filename":
			filename = attr.Value.String()
		}
		return true
	})
	return size, filename
}

func (h *markHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &markHandler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, stdout: h.stdout}
}

func (h *markHandler) WithGroup(name string) slog.Handler {
	return &markHandler{handler: h.handler.WithGroup(name), spinner: h.spinner, stdout: h.stdout}
}

func (h *markHandler) write(s string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	_, err = io.WriteString(h.stdout, s)
	return err
}
