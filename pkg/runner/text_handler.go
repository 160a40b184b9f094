package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// ContentRenderer transforms prompt text before it is printed.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// TextHandler implements the standard terminal interface.
type TextHandler struct {
	Writer   io.Writer
	Renderer ContentRenderer

	lines *lineReader
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer: w,
		lines:  newLineReader(r),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Prompt(ctx context.Context, p Prompt) (string, error) {
	fmt.Fprintln(h.Writer, h.render(promptText(p)))

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		line, err := h.lines.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		clean, err := SanitizeInput(line)
		if err != nil {
			fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
			continue
		}
		return clean, nil
	}
}

// Close stops reading replies.
func (h *TextHandler) Close() error {
	return h.lines.Close()
}

func (h *TextHandler) Notify(ctx context.Context, msg string) error {
	_, err := fmt.Fprintln(h.Writer, msg)
	return err
}

func (h *TextHandler) render(s string) string {
	if h.Renderer == nil {
		return s
	}
	rendered, err := h.Renderer(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(rendered)
}

// promptText appends the accepted replies to yes/no prompts.
func promptText(p Prompt) string {
	switch {
	case p.AllowsUnsure():
		return p.Text + " (yes/no/not sure)"
	case p.YesNo():
		return p.Text + " (yes/no)"
	}
	return p.Text
}
