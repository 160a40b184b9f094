package domain

// Phase is the position of a session in the traversal state machine.
type Phase string

const (
	PhaseAsking     Phase = "asking"     // Current node is a question
	PhaseConfirming Phase = "confirming" // Current node is a diagnosis awaiting confirmation
	PhaseLearning   Phase = "learning"   // Diagnosis was rejected, waiting for a lesson
	PhaseDone       Phase = "done"       // Session finished
)

// Cursor is the immutable position of a session in the tree.
// Engine operations take a Cursor and return a new one; the zero value is not usable.
type Cursor struct {
	root        *Node
	current     *Node
	parent      *Node
	cameFromYes bool
	phase       Phase
}

// NewCursor places a cursor on the root of the tree.
func NewCursor(root *Node) Cursor {
	return Cursor{
		root:    root,
		current: root,
		phase:   phaseFor(root),
	}
}

func phaseFor(n *Node) Phase {
	if n.IsLeaf() {
		return PhaseConfirming
	}
	return PhaseAsking
}

// Root returns the tree owned by the session.
func (c Cursor) Root() *Node { return c.root }

// Current returns the node the session is looking at.
func (c Cursor) Current() *Node { return c.current }

// Parent returns the node the current one was reached from, or nil at the root.
func (c Cursor) Parent() *Node { return c.parent }

// CameFromYes reports whether the current node is the parent's yes branch.
func (c Cursor) CameFromYes() bool { return c.cameFromYes }

// Phase returns the state machine phase.
func (c Cursor) Phase() Phase { return c.phase }

// Descend moves to the branch selected by a, recording the edge taken.
func (c Cursor) Descend(a Answer) Cursor {
	next := c.current.Branch(a)
	return Cursor{
		root:        c.root,
		current:     next,
		parent:      c.current,
		cameFromYes: a == AnswerYes,
		phase:       phaseFor(next),
	}
}

// WithPhase returns a copy of the cursor in the given phase.
func (c Cursor) WithPhase(p Phase) Cursor {
	c.phase = p
	return c
}

// WithRoot returns a copy of the cursor owning root.
func (c Cursor) WithRoot(root *Node) Cursor {
	c.root = root
	return c
}

// Settle returns a finished cursor resting on n, keeping the parent link.
func (c Cursor) Settle(n *Node) Cursor {
	c.current = n
	c.phase = PhaseDone
	return c
}
