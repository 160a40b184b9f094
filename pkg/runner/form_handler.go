package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7")).PaddingLeft(1)
	errorNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).PaddingLeft(1)
)

// FormHandler asks every prompt through an interactive huh form:
// yes/no prompts become selects, free text becomes an input field.
type FormHandler struct {
	Input      io.Reader
	Writer     io.Writer
	Accessible bool
}

// NewFormHandler creates a form handler on the given streams.
func NewFormHandler(r io.Reader, w io.Writer) *FormHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &FormHandler{Input: r, Writer: w}
}

func (h *FormHandler) Prompt(ctx context.Context, p Prompt) (string, error) {
	var reply string
	form := huh.NewForm(huh.NewGroup(field(p, &reply))).
		WithInput(h.Input).
		WithOutput(h.Writer).
		WithAccessible(h.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if p.YesNo() {
		return reply, nil
	}
	return SanitizeInput(reply)
}

func (h *FormHandler) Notify(ctx context.Context, msg string) error {
	style := noticeStyle
	if isFailure(msg) {
		style = errorNoticeStyle
	}
	_, err := fmt.Fprintln(h.Writer, style.Render(msg))
	return err
}

// field builds the huh field for p, writing the reply into value.
func field(p Prompt, value *string) huh.Field {
	if !p.YesNo() {
		return huh.NewInput().
			Title(p.Text).
			Value(value)
	}

	options := []huh.Option[string]{
		huh.NewOption("Yes", "yes"),
		huh.NewOption("No", "no"),
	}
	if p.AllowsUnsure() {
		options = append(options, huh.NewOption("I'm not sure", ReplyUnsure))
	}
	return huh.NewSelect[string]().
		Title(p.Text).
		Options(options...).
		Value(value)
}
