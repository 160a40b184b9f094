package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/diagtree/pkg/domain"
)

// GraphOverlay highlights a walk through the tree.
type GraphOverlay struct {
	// Path is the sequence of answers given from the root.
	Path []domain.Answer
}

// GenerateMermaid produces a Mermaid flowchart of the tree.
// Nodes are numbered in pre-order (n0 is the root) and shaped by role:
// - Question: [/Parallelogram/]
// - Diagnosis: ([Stadium])
// Edges are labelled yes/no. The overlay, if provided, marks the nodes on its
// path as visited and the last one as current.
func GenerateMermaid(root *domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	ids := make(map[*domain.Node]string)
	domain.Walk(root, func(n *domain.Node, _ int) bool {
		ids[n] = fmt.Sprintf("n%d", len(ids))
		return true
	})

	domain.Walk(root, func(n *domain.Node, _ int) bool {
		opener, closer := "([", "])"
		if !n.IsLeaf() {
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[n], opener, escapeLabel(n.Text), closer)

		for _, a := range []domain.Answer{domain.AnswerYes, domain.AnswerNo} {
			if child := n.Branch(a); child != nil {
				fmt.Fprintf(&sb, "    %s -- %s --> %s\n", ids[n], a, ids[child])
			}
		}
		return true
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		current := root
		for _, a := range overlay.Path {
			next := current.Branch(a)
			if next == nil {
				break
			}
			fmt.Fprintf(&sb, "    class %s visited;\n", ids[current])
			current = next
		}
		fmt.Fprintf(&sb, "    class %s current;\n", ids[current])
	}

	return sb.String()
}

// escapeLabel replaces characters that end a quoted Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
