package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/diagtree/pkg/domain"
)

// ErrInvalidTree is returned when ValidateTree finds at least one problem.
var ErrInvalidTree = errors.New("invalid tree")

type pending struct {
	node *domain.Node
	path []string
}

// ValidateTree crawls the tree breadth-first and reports every node that
// cannot be stored: blank text, text spanning several lines, or a question
// missing one of its branches.
func ValidateTree(root *domain.Node) error {
	if root == nil {
		return fmt.Errorf("%w: tree is empty", ErrInvalidTree)
	}

	var problems []string
	queue := []pending{{node: root}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		n := current.node
		where := describe(current.path)

		if strings.TrimSpace(n.Text) == "" {
			problems = append(problems, fmt.Sprintf("blank text at %s", where))
		}
		if strings.ContainsAny(n.Text, "\r\n") {
			problems = append(problems, fmt.Sprintf("line break in %q at %s", n.Text, where))
		}
		if !n.Valid() {
			problems = append(problems, fmt.Sprintf("question %q at %s has a single branch", n.Text, where))
		}

		if n.Yes != nil {
			queue = append(queue, pending{node: n.Yes, path: extend(current.path, "yes")})
		}
		if n.No != nil {
			queue = append(queue, pending{node: n.No, path: extend(current.path, "no")})
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: found %d errors:\n- %s", ErrInvalidTree, len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}

func extend(path []string, step string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, step)
}

func describe(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	return "root/" + strings.Join(path, "/")
}
