/*
Package diagtree is a yes/no diagnosis engine that learns from its mistakes.

The knowledge lives in a binary tree: internal nodes are questions, leaves are
diagnoses. A session walks the tree from the root, one answer at a time, until
it reaches a diagnosis. When the user rejects it, the engine asks for the
correct diagnosis and a question telling both apart, grows the tree in place
and saves it right away.

# Architecture

The Engine is stateless between calls. Every operation takes a domain.Cursor
(current node, parent, edge taken) and returns the next one, so that drivers
hold the session and the core can be tested without any UI. Persistence goes
through ports.TreeStore; adapters exist for a plain text file, memory, Redis,
Badger and SQLite, all sharing the line format of package codec.

# Usage

	store := file.New("diagnosis_tree.txt")
	eng := diagtree.New(store, diagtree.WithSeed("Common cold"))

	ctx := context.Background()
	root, err := eng.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}

	c, _ := eng.Start(root)
	for c.Phase() == domain.PhaseAsking {
		// Ask c.Current().Text and read the answer.
		c, err = eng.Advance(ctx, c, domain.AnswerYes)
	}

	c, _ = eng.Confirm(ctx, c, false)
	c, err = eng.Learn(ctx, c, domain.Lesson{
		Diagnosis:        "Flu",
		Question:         "Do you have a fever?",
		AnswerForCorrect: domain.AnswerYes,
	})

Package runner provides ready-made interactive drivers for terminals, forms
and JSON streams.
*/
package diagtree
