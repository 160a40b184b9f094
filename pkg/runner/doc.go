/*
Package runner drives interactive diagnosis sessions.

The Runner owns the conversation: it asks the questions of the tree, confirms
the diagnosis, offers to learn from a wrong one and collects the lesson. All
I/O goes through an IOHandler so that the same loop serves a terminal
(TextHandler), an interactive form (FormHandler) or a program speaking
JSON lines (JSONHandler).

# Usage

	eng := diagtree.New(file.New("diagnosis_tree.txt"))
	root, err := eng.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithRepeat(true),
	)
	if _, err := r.Run(ctx, eng, root); err != nil {
		log.Fatal(err)
	}
*/
package runner
