// Package codec reads and writes diagnosis trees in their line-oriented text form.
//
// A tree is written in pre-order, one node per line. Questions are prefixed with
// "Q:" and diagnoses with "A:"; the yes-subtree of a question always precedes its
// no-subtree:
//
//	Q:Fever?
//	A:Flu
//	A:Cold
//
// There is no escaping: node text may not contain line breaks.
package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/diagtree/pkg/domain"
)

const (
	QuestionPrefix = "Q:"
	AnswerPrefix   = "A:"
)

// maxLineSize bounds a single node line.
const maxLineSize = 1024 * 1024

// SyntaxError describes a line that could not be parsed.
// It unwraps to domain.ErrCorruptTreeFormat.
type SyntaxError struct {
	Line   int    // 1-based line number, 0 when the input ended early
	Text   string // Offending line
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", domain.ErrCorruptTreeFormat, e.Reason)
	}
	if e.Text == "" {
		return fmt.Sprintf("%s: line %d: %s", domain.ErrCorruptTreeFormat, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: line %d: %s: %q", domain.ErrCorruptTreeFormat, e.Line, e.Reason, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return domain.ErrCorruptTreeFormat
}

// Encode writes the tree rooted at root to w.
// A nil root writes nothing.
func Encode(w io.Writer, root *domain.Node) error {
	bw := bufio.NewWriter(w)
	if err := encode(bw, root); err != nil {
		return err
	}
	return bw.Flush()
}

func encode(w *bufio.Writer, n *domain.Node) error {
	if n == nil {
		return nil
	}
	if !n.Valid() {
		return fmt.Errorf("%w: %q has exactly one branch", domain.ErrInvalidNode, n.Text)
	}
	if strings.ContainsAny(n.Text, "\r\n") {
		return fmt.Errorf("%w: %q contains a line break", domain.ErrInvalidNode, n.Text)
	}

	prefix := QuestionPrefix
	if n.IsLeaf() {
		prefix = AnswerPrefix
	}
	if _, err := w.WriteString(prefix + strings.TrimSpace(n.Text) + "\n"); err != nil {
		return err
	}
	if err := encode(w, n.Yes); err != nil {
		return err
	}
	return encode(w, n.No)
}

// Marshal returns the text form of the tree.
func Marshal(root *domain.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Lines returns the text form of the tree, one element per node.
func Lines(root *domain.Node) ([]string, error) {
	data, err := Marshal(root)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []string{}, nil
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), nil
}

// Decode reads a whole tree from r.
// Empty input (or input made only of blank lines) yields a nil root and no error.
// Unknown prefixes, a question missing a subtree and lines left over after a
// complete tree are reported as *SyntaxError.
func Decode(r io.Reader) (*domain.Node, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	p := &parser{scanner: sc}

	root, err := p.node()
	if err != nil {
		return nil, err
	}

	text, ok, err := p.next()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, &SyntaxError{Line: p.line, Text: text, Reason: "unexpected line after complete tree"}
	}
	return root, nil
}

// Unmarshal parses the text form of a tree.
func Unmarshal(data []byte) (*domain.Node, error) {
	return Decode(bytes.NewReader(data))
}

// ParseLines parses a tree given one element per line.
func ParseLines(lines []string) (*domain.Node, error) {
	return Decode(strings.NewReader(strings.Join(lines, "\n")))
}

// parser is a recursive-descent reader; the scanner position is shared by
// every level of the recursion.
type parser struct {
	scanner *bufio.Scanner
	line    int
}

// next returns the next non-blank line.
func (p *parser) next() (string, bool, error) {
	for p.scanner.Scan() {
		p.line++
		text := p.scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		return text, true, nil
	}
	if err := p.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return "", false, &SyntaxError{Line: p.line + 1, Reason: fmt.Sprintf("line longer than %d bytes", maxLineSize)}
		}
		return "", false, fmt.Errorf("%w: read tree: %w", domain.ErrStorage, err)
	}
	return "", false, nil
}

// node consumes one complete subtree. It returns nil at end of input.
func (p *parser) node() (*domain.Node, error) {
	text, ok, err := p.next()
	if err != nil || !ok {
		return nil, err
	}

	switch {
	case strings.HasPrefix(text, QuestionPrefix):
		n := &domain.Node{Text: strings.TrimSpace(text[len(QuestionPrefix):])}
		if n.Yes, err = p.child(n); err != nil {
			return nil, err
		}
		if n.No, err = p.child(n); err != nil {
			return nil, err
		}
		return n, nil
	case strings.HasPrefix(text, AnswerPrefix):
		return &domain.Node{Text: strings.TrimSpace(text[len(AnswerPrefix):])}, nil
	default:
		return nil, &SyntaxError{Line: p.line, Text: text, Reason: "expected Q: or A: prefix"}
	}
}

func (p *parser) child(parent *domain.Node) (*domain.Node, error) {
	n, err := p.node()
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &SyntaxError{Reason: fmt.Sprintf("truncated input: question %q is missing a branch", parent.Text)}
	}
	return n, nil
}
