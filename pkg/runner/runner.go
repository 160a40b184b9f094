package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/diagtree"
	"github.com/aretw0/diagtree/internal/logging"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/google/uuid"
)

// Messages shown to the user between prompts.
const (
	MsgAnswerYesNo      = "Please answer yes or no."
	MsgCorrect          = "Great! I'm glad I could help."
	MsgUnsure           = "No problem! Diagnosing is tricky. Consider consulting a healthcare professional."
	MsgDeclined         = "Thanks for using the assistant. Take care!"
	MsgEmptyDiagnosis   = "Oops! Diagnosis cannot be empty. Try again."
	MsgEmptyQuestion    = "Please provide a valid question."
	MsgLearned          = "Thanks! I've learned from this experience."
	MsgSaved            = "[Changes saved automatically.]"
	MsgGoodbye          = "Thanks for using the Diagnosis Assistant. Stay well!"
	saveFailedPrefix    = "Failed to save changes: "
	textRestartQuestion = "Would you like to try another diagnosis?"
)

func isFailure(msg string) bool {
	return strings.HasPrefix(msg, saveFailedPrefix)
}

// Runner drives interactive diagnosis sessions against an engine.
// It uses an IOHandler strategy to abstract the interaction mode (Text, Form or JSON).
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Repeat offers another round after every finished diagnosis.
	Repeat bool
}

// NewRunner creates a Runner with the given options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// outcome is how a single round ended.
type outcome int

const (
	outcomeConfirmed outcome = iota
	outcomeLearned
	outcomeDeclined
	outcomeUnsure
)

// Run plays rounds on root until the user stops, and returns the tree to keep,
// which differs from root when a lesson was learned at the top of the tree.
// Input exhaustion and context cancellation end the session without error.
func (r *Runner) Run(ctx context.Context, engine *diagtree.Engine, root *domain.Node) (*domain.Node, error) {
	handler := r.resolveHandler()
	logger := r.logger().With("session_id", uuid.NewString())

	c, err := engine.Start(root)
	if err != nil {
		return root, err
	}
	logger.Info("session started", "nodes", domain.Inspect(root).Nodes)

	for round := 1; ; round++ {
		var out outcome
		c, out, err = r.round(ctx, handler, engine, c)
		if err != nil {
			if isStop(ctx, err) {
				logger.Info("session stopped", "rounds", round, "reason", err)
				return c.Root(), nil
			}
			return c.Root(), err
		}
		logger.Debug("round finished", "round", round, "outcome", out)

		if !r.Repeat && out != outcomeUnsure {
			return c.Root(), nil
		}

		again, err := r.askYesNo(ctx, handler, Prompt{Kind: PromptRestart, Text: textRestartQuestion})
		if err != nil {
			if isStop(ctx, err) {
				return c.Root(), nil
			}
			return c.Root(), err
		}
		if again == domain.AnswerNo {
			if err := handler.Notify(ctx, MsgGoodbye); err != nil {
				return c.Root(), err
			}
			return c.Root(), nil
		}
		c = engine.Reset(c)
	}
}

// round walks from the cursor to a finished diagnosis.
func (r *Runner) round(ctx context.Context, h IOHandler, engine *diagtree.Engine, c domain.Cursor) (domain.Cursor, outcome, error) {
	var err error
	for c.Phase() == domain.PhaseAsking {
		reply, err := r.ask(ctx, h, Prompt{Kind: PromptQuestion, Text: c.Current().Text})
		if err != nil {
			return c, 0, err
		}
		if IsUnsure(reply) {
			return c, outcomeUnsure, h.Notify(ctx, MsgUnsure)
		}
		answer, _ := domain.ParseAnswer(reply)
		if c, err = engine.Advance(ctx, c, answer); err != nil {
			return c, 0, err
		}
	}

	diagnosis := c.Current().Text
	correct, err := r.askYesNo(ctx, h, Prompt{
		Kind: PromptDiagnosis,
		Text: fmt.Sprintf("The diagnosis is: %s\nIs this correct?", diagnosis),
	})
	if err != nil {
		return c, 0, err
	}
	if c, err = engine.Confirm(ctx, c, bool(correct)); err != nil {
		return c, 0, err
	}
	if correct {
		return c, outcomeConfirmed, h.Notify(ctx, MsgCorrect)
	}

	help, err := r.askYesNo(ctx, h, Prompt{Kind: PromptHelp, Text: "Would you like to help me improve?"})
	if err != nil {
		return c, 0, err
	}
	if help == domain.AnswerNo {
		return engine.Reset(c), outcomeDeclined, h.Notify(ctx, MsgDeclined)
	}

	return r.learn(ctx, h, engine, c, diagnosis)
}

// learn collects a lesson, retrying until the engine accepts it.
func (r *Runner) learn(ctx context.Context, h IOHandler, engine *diagtree.Engine, c domain.Cursor, rejected string) (domain.Cursor, outcome, error) {
	for {
		lesson, err := r.collectLesson(ctx, h, rejected)
		if err != nil {
			return c, 0, err
		}

		next, err := engine.Learn(ctx, c, lesson)
		switch {
		case err == nil:
			if err := h.Notify(ctx, MsgLearned); err != nil {
				return next, 0, err
			}
			if engine.Persistent() {
				return next, outcomeLearned, h.Notify(ctx, MsgSaved)
			}
			return next, outcomeLearned, nil
		case errors.Is(err, domain.ErrStorage):
			r.logger().Warn("learned tree not saved", "error", err)
			return next, outcomeLearned, h.Notify(ctx, saveFailedPrefix+err.Error())
		case errors.Is(err, domain.ErrEmptyInput), errors.Is(err, domain.ErrInvalidNode):
			if err := h.Notify(ctx, err.Error()); err != nil {
				return c, 0, err
			}
		default:
			return c, 0, err
		}
	}
}

func (r *Runner) collectLesson(ctx context.Context, h IOHandler, rejected string) (domain.Lesson, error) {
	var lesson domain.Lesson

	diagnosis, err := r.askText(ctx, h,
		Prompt{Kind: PromptCorrectDiagnosis, Text: "What is the correct diagnosis?"},
		MsgEmptyDiagnosis)
	if err != nil {
		return lesson, err
	}

	question, err := r.askText(ctx, h,
		Prompt{
			Kind: PromptDistinguishingQuestion,
			Text: fmt.Sprintf("What yes/no question would distinguish %q from %q?", rejected, diagnosis),
		},
		MsgEmptyQuestion)
	if err != nil {
		return lesson, err
	}

	answer, err := r.askYesNo(ctx, h, Prompt{
		Kind: PromptAnswerForCorrect,
		Text: fmt.Sprintf("For %q, what is the answer to that question?", diagnosis),
	})
	if err != nil {
		return lesson, err
	}

	return domain.Lesson{Diagnosis: diagnosis, Question: question, AnswerForCorrect: answer}, nil
}

// ask re-prompts until the reply is a yes/no answer (or "not sure" where allowed).
func (r *Runner) ask(ctx context.Context, h IOHandler, p Prompt) (string, error) {
	for {
		reply, err := h.Prompt(ctx, p)
		if err != nil {
			return "", err
		}
		if p.AllowsUnsure() && IsUnsure(reply) {
			return reply, nil
		}
		if _, err := domain.ParseAnswer(reply); err == nil {
			return reply, nil
		}
		if err := h.Notify(ctx, MsgAnswerYesNo); err != nil {
			return "", err
		}
	}
}

func (r *Runner) askYesNo(ctx context.Context, h IOHandler, p Prompt) (domain.Answer, error) {
	reply, err := r.ask(ctx, h, p)
	if err != nil {
		return domain.AnswerNo, err
	}
	return domain.ParseAnswer(reply)
}

// askText re-prompts until the reply is not blank.
func (r *Runner) askText(ctx context.Context, h IOHandler, p Prompt, blank string) (string, error) {
	for {
		reply, err := h.Prompt(ctx, p)
		if err != nil {
			return "", err
		}
		if reply = strings.TrimSpace(reply); reply != "" {
			return reply, nil
		}
		if err := h.Notify(ctx, blank); err != nil {
			return "", err
		}
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}

// isStop reports whether err means the user went away rather than a failure.
func isStop(ctx context.Context, err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || ctx.Err() != nil
}
