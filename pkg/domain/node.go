package domain

// Node is a single element of the decision tree.
// A node with no branches is a leaf and holds a diagnosis; a node with both
// branches holds a yes/no question. A node with exactly one branch is invalid.
type Node struct {
	Text string `json:"text"`

	// Yes is followed when the question is answered "yes".
	Yes *Node `json:"yes,omitempty"`
	// No is followed when the question is answered "no".
	No *Node `json:"no,omitempty"`
}

// NewLeaf creates a diagnosis node.
func NewLeaf(text string) *Node {
	return &Node{Text: text}
}

// NewQuestion creates a question node with both branches set.
func NewQuestion(text string, yes, no *Node) *Node {
	return &Node{Text: text, Yes: yes, No: no}
}

// IsLeaf reports whether the node is a diagnosis.
func (n *Node) IsLeaf() bool {
	return n.Yes == nil && n.No == nil
}

// Valid reports whether the node has zero or two branches.
func (n *Node) Valid() bool {
	return (n.Yes == nil) == (n.No == nil)
}

// Branch returns the child reached by the given answer.
func (n *Node) Branch(a Answer) *Node {
	if a == AnswerYes {
		return n.Yes
	}
	return n.No
}

// Walk visits the subtree in pre-order (node, yes-subtree, no-subtree).
// Returning false from fn stops the walk.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	if !walk(n.Yes, depth+1, fn) {
		return false
	}
	return walk(n.No, depth+1, fn)
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes     int
	Questions int
	Leaves    int
	Depth     int
	Invalid   int
}

// Inspect computes Stats for the tree rooted at n.
func Inspect(n *Node) Stats {
	var s Stats
	Walk(n, func(node *Node, depth int) bool {
		s.Nodes++
		switch {
		case node.IsLeaf():
			s.Leaves++
		case node.Valid():
			s.Questions++
		default:
			s.Invalid++
		}
		if depth+1 > s.Depth {
			s.Depth = depth + 1
		}
		return true
	})
	return s
}

// Equal reports whether two trees have the same shape and the same text at
// every position.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Text == b.Text && Equal(a.Yes, b.Yes) && Equal(a.No, b.No)
}
