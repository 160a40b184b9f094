package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/diagtree/pkg/domain"
)

// Learn replaces the rejected diagnosis with a question telling it apart from
// the correct one, then saves the whole tree.
//
// The rejected leaf is not reused: its text is copied into a new leaf. When the
// rejected leaf was the root, the new question becomes the root. The returned
// cursor is Done, its Current is the new question and its Root is the tree to keep.
//
// A blank lesson returns an error wrapping domain.ErrEmptyInput and leaves the
// tree untouched. A failed save returns the committed cursor together with an
// error wrapping domain.ErrStorage; the session may carry on with it.
func (e *Engine) Learn(ctx context.Context, c domain.Cursor, lesson domain.Lesson) (domain.Cursor, error) {
	if err := expectPhase(c, domain.PhaseLearning, "learn"); err != nil {
		return c, err
	}
	if err := lesson.Validate(); err != nil {
		return c, err
	}
	lesson = lesson.Normalize()

	rejected := c.Current()
	newLeaf := domain.NewLeaf(lesson.Diagnosis)
	oldLeaf := domain.NewLeaf(rejected.Text)

	branch := domain.NewQuestion(lesson.Question, oldLeaf, newLeaf)
	if lesson.AnswerForCorrect == domain.AnswerYes {
		branch.Yes, branch.No = newLeaf, oldLeaf
	}

	root := c.Root()
	parent := c.Parent()
	switch {
	case parent == nil:
		root = branch
	case c.CameFromYes():
		parent.Yes = branch
	default:
		parent.No = branch
	}

	next := c.WithRoot(root).Settle(branch)

	if e.hooks.OnLearn != nil {
		e.hooks.OnLearn(ctx, &domain.LearnEvent{
			EventBase: e.event(domain.EventLearn),
			Rejected:  rejected.Text,
			Diagnosis: lesson.Diagnosis,
			Question:  lesson.Question,
			AtRoot:    parent == nil,
		})
	}
	e.logger.Info("learned diagnosis",
		"rejected", rejected.Text,
		"diagnosis", lesson.Diagnosis,
		"question", lesson.Question,
		"at_root", parent == nil,
	)

	if err := e.Save(ctx, root); err != nil {
		return next, err
	}
	return next, nil
}

// Save persists the tree and reports the attempt to the hooks.
func (e *Engine) Save(ctx context.Context, root *domain.Node) error {
	if e.store == nil {
		return nil
	}

	start := e.now()
	err := e.store.Save(ctx, root)
	elapsed := e.now().Sub(start)

	if e.hooks.OnSave != nil {
		e.hooks.OnSave(ctx, &domain.SaveEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventSave},
			Nodes:     domain.Inspect(root).Nodes,
			Duration:  elapsed,
			Err:       err,
		})
	}

	if err != nil {
		e.logger.Error("failed to save tree", "error", err)
		return fmt.Errorf("save tree: %w", storageError(err))
	}
	e.logger.Debug("tree saved", "duration", elapsed)
	return nil
}
