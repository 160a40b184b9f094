package domain_test

import (
	"testing"

	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func fever() *domain.Node {
	return domain.NewQuestion("Fever?", domain.NewLeaf("Flu"), domain.NewLeaf("Cold"))
}

func TestNode_Leaf(t *testing.T) {
	leaf := domain.NewLeaf("Flu")
	assert.True(t, leaf.IsLeaf())
	assert.True(t, leaf.Valid())

	q := fever()
	assert.False(t, q.IsLeaf())
	assert.True(t, q.Valid())
	assert.Equal(t, "Flu", q.Branch(domain.AnswerYes).Text)
	assert.Equal(t, "Cold", q.Branch(domain.AnswerNo).Text)

	half := &domain.Node{Text: "broken", Yes: domain.NewLeaf("x")}
	assert.False(t, half.IsLeaf())
	assert.False(t, half.Valid())
}

func TestInspect(t *testing.T) {
	root := domain.NewQuestion("Cough?", fever(), domain.NewLeaf("Allergy"))

	s := domain.Inspect(root)
	assert.Equal(t, domain.Stats{Nodes: 5, Questions: 2, Leaves: 3, Depth: 3}, s)

	root.No.Yes = domain.NewLeaf("dangling")
	assert.Equal(t, 1, domain.Inspect(root).Invalid)
}

func TestWalk_PreOrderAndStop(t *testing.T) {
	root := domain.NewQuestion("Cough?", fever(), domain.NewLeaf("Allergy"))

	var seen []string
	domain.Walk(root, func(n *domain.Node, _ int) bool {
		seen = append(seen, n.Text)
		return true
	})
	assert.Equal(t, []string{"Cough?", "Fever?", "Flu", "Cold", "Allergy"}, seen)

	seen = nil
	domain.Walk(root, func(n *domain.Node, _ int) bool {
		seen = append(seen, n.Text)
		return n.Text != "Flu"
	})
	assert.Equal(t, []string{"Cough?", "Fever?", "Flu"}, seen)
}

func TestEqual(t *testing.T) {
	assert.True(t, domain.Equal(fever(), fever()))
	assert.True(t, domain.Equal(nil, nil))
	assert.False(t, domain.Equal(fever(), nil))

	swapped := domain.NewQuestion("Fever?", domain.NewLeaf("Cold"), domain.NewLeaf("Flu"))
	assert.False(t, domain.Equal(fever(), swapped))
}

func TestParseAnswer(t *testing.T) {
	for _, in := range []string{"yes", "Y", "  YES "} {
		a, err := domain.ParseAnswer(in)
		assert.NoError(t, err, in)
		assert.Equal(t, domain.AnswerYes, a, in)
	}
	for _, in := range []string{"no", "N", "No"} {
		a, err := domain.ParseAnswer(in)
		assert.NoError(t, err, in)
		assert.Equal(t, domain.AnswerNo, a, in)
	}
	_, err := domain.ParseAnswer("maybe")
	assert.Error(t, err)
}

func TestLesson_Validate(t *testing.T) {
	ok := domain.Lesson{Diagnosis: " Cold ", Question: "Fever?"}
	assert.NoError(t, ok.Validate())
	assert.Equal(t, "Cold", ok.Normalize().Diagnosis)

	assert.ErrorIs(t, domain.Lesson{Diagnosis: "  ", Question: "Fever?"}.Validate(), domain.ErrEmptyInput)
	assert.ErrorIs(t, domain.Lesson{Diagnosis: "Cold", Question: "\t"}.Validate(), domain.ErrEmptyInput)
}

func TestCursor_Descend(t *testing.T) {
	root := fever()
	c := domain.NewCursor(root)
	assert.Equal(t, domain.PhaseAsking, c.Phase())
	assert.Nil(t, c.Parent())

	next := c.Descend(domain.AnswerNo)
	assert.Same(t, root.No, next.Current())
	assert.Same(t, root, next.Parent())
	assert.False(t, next.CameFromYes())
	assert.Equal(t, domain.PhaseConfirming, next.Phase())

	// The previous cursor is unchanged.
	assert.Same(t, root, c.Current())
}

func TestLesson_RejectsLineBreaks(t *testing.T) {
	l := domain.Lesson{Diagnosis: "Cold\nA:Injected", Question: "Fever?"}
	assert.ErrorIs(t, l.Validate(), domain.ErrInvalidNode)
}
