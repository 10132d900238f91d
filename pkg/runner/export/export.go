package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"tableflip.dev/sidekick/pkg/app"
)

const minWrap = 10

// Export writes the Markdown report of the last Days days.
type Export struct {
	Service *app.Service
	Days    int
	// Copy puts the raw report on the system clipboard instead of printing it.
	Copy bool
	// Render pretty prints the report for the terminal.
	Render bool
	Width  int
	// Out defaults to color.Output.
	Out io.Writer
	// WriteClipboard defaults to clipboard.WriteAll.
	WriteClipboard func(string) error
}

func (e *Export) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not export, no service")
	}

	md, err := e.Service.Export(ctx, e.Days)
	if err != nil {
		return err
	}

	out := e.Out
	if out == nil {
		out = color.Output
	}

	if e.Copy {
		write := e.WriteClipboard
		if write == nil {
			write = clipboard.WriteAll
		}
		if err := write(md); err != nil {
			return fmt.Errorf("export: copy to clipboard: %w", err)
		}
		logrus.WithField("component", "export").WithField("bytes", len(md)).Debug("report copied")
		_, _ = color.New(color.FgHiGreen).Fprintln(out, "Report copied to clipboard.")
		return nil
	}

	if e.Render {
		rendered, err := render(md, e.Width)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, rendered)
		return nil
	}

	_, _ = fmt.Fprintln(out, md)
	return nil
}

func render(md string, width int) (string, error) {
	if width < minWrap {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("export: renderer: %w", err)
	}
	out, err := renderer.Render(strings.TrimSpace(md))
	if err != nil {
		return "", fmt.Errorf("export: render: %w", err)
	}
	return out, nil
}
