package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// KindNotice marks JSON messages that need no reply.
const KindNotice = "notice"

// Message is one line of the JSON stream.
type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// JSONHandler implements the IOHandler interface for JSON-Lines communication.
// Every prompt and notice is written as one Message object; replies are read
// one per line, either as JSON strings or as raw text.
type JSONHandler struct {
	Encoder *json.Encoder

	lines *lineReader
	mu    sync.Mutex
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Encoder: json.NewEncoder(w),
		lines:   newLineReader(r),
	}
}

func (h *JSONHandler) Prompt(ctx context.Context, p Prompt) (string, error) {
	if err := h.emit(Message{Kind: string(p.Kind), Text: p.Text}); err != nil {
		return "", err
	}

	for {
		line, err := h.lines.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)

		var val string
		if err := json.Unmarshal([]byte(line), &val); err == nil {
			line = val
		}

		clean, err := SanitizeInput(line)
		if err != nil {
			// The prompt stays open; the client answers it again.
			if err := h.emit(Message{Kind: KindNotice, Text: fmt.Sprintf("Error: %v. Please try again.", err)}); err != nil {
				return "", err
			}
			continue
		}
		return clean, nil
	}
}

// Close stops reading replies.
func (h *JSONHandler) Close() error {
	return h.lines.Close()
}

func (h *JSONHandler) Notify(ctx context.Context, msg string) error {
	return h.emit(Message{Kind: KindNotice, Text: msg})
}

func (h *JSONHandler) emit(m Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(m)
}
