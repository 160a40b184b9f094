package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/diagtree/internal/presentation/graph"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func tree() *domain.Node {
	return domain.NewQuestion("Do you have a fever?",
		domain.NewQuestion("Cough?", domain.NewLeaf("Flu"), domain.NewLeaf("Measles")),
		domain.NewLeaf("Allergy"),
	)
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(tree(), nil)

	assert.Equal(t, `graph TD
    n0[/"Do you have a fever?"/]
    n0 -- yes --> n1
    n0 -- no --> n4
    n1[/"Cough?"/]
    n1 -- yes --> n2
    n1 -- no --> n3
    n2(["Flu"])
    n3(["Measles"])
    n4(["Allergy"])
`, got)
}

func TestGenerateMermaid_SingleLeaf(t *testing.T) {
	got := graph.GenerateMermaid(domain.NewLeaf("Common cold"), nil)
	assert.Equal(t, "graph TD\n    n0([\"Common cold\"])\n", got)
}

func TestGenerateMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil, nil))
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	got := graph.GenerateMermaid(domain.NewLeaf(`So-called "stomach flu"`), nil)
	assert.Contains(t, got, `n0(["So-called #quot;stomach flu#quot;"])`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	got := graph.GenerateMermaid(tree(), &graph.GraphOverlay{
		Path: []domain.Answer{domain.AnswerYes, domain.AnswerNo},
	})

	assert.Contains(t, got, "classDef visited")
	assert.Contains(t, got, "class n0 visited;")
	assert.Contains(t, got, "class n1 visited;")
	assert.Contains(t, got, "class n3 current;")
	assert.NotContains(t, got, "class n2")
}

func TestGenerateMermaid_OverlayStopsAtLeaf(t *testing.T) {
	got := graph.GenerateMermaid(tree(), &graph.GraphOverlay{
		Path: []domain.Answer{domain.AnswerNo, domain.AnswerYes, domain.AnswerYes},
	})

	assert.Contains(t, got, "class n4 current;")
	assert.Equal(t, 1, strings.Count(got, "visited;"))
}
