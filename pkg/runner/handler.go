package runner

import (
	"context"
	"strings"
)

// PromptKind identifies what the runner is asking for.
type PromptKind string

const (
	// PromptQuestion asks a tree question; replies are yes, no or "not sure".
	PromptQuestion PromptKind = "question"
	// PromptDiagnosis asks whether the reached diagnosis is correct.
	PromptDiagnosis PromptKind = "diagnosis"
	// PromptHelp offers to teach the engine after a wrong diagnosis.
	PromptHelp PromptKind = "help"
	// PromptCorrectDiagnosis collects the right diagnosis.
	PromptCorrectDiagnosis PromptKind = "correct_diagnosis"
	// PromptDistinguishingQuestion collects the question telling both diagnoses apart.
	PromptDistinguishingQuestion PromptKind = "distinguishing_question"
	// PromptAnswerForCorrect asks which answer leads to the correct diagnosis.
	PromptAnswerForCorrect PromptKind = "answer_for_correct"
	// PromptRestart offers another round.
	PromptRestart PromptKind = "restart"
)

// Prompt is a single request for input.
type Prompt struct {
	Kind PromptKind `json:"kind"`
	Text string     `json:"text"`
}

// YesNo reports whether the prompt expects a yes/no reply.
func (p Prompt) YesNo() bool {
	switch p.Kind {
	case PromptCorrectDiagnosis, PromptDistinguishingQuestion:
		return false
	}
	return true
}

// AllowsUnsure reports whether "I'm not sure" is an accepted reply.
func (p Prompt) AllowsUnsure() bool {
	return p.Kind == PromptQuestion
}

// ReplyUnsure is the canonical "I'm not sure" reply.
const ReplyUnsure = "unsure"

// IsUnsure recognises the ways a user may say they do not know.
func IsUnsure(reply string) bool {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case ReplyUnsure, "?", "not sure", "i'm not sure", "idk", "dunno":
		return true
	}
	return false
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (terminal), Form (huh) and JSON (structured) modes.
type IOHandler interface {
	// Prompt presents p and blocks until the user replies.
	// It returns io.EOF when the input is exhausted.
	Prompt(ctx context.Context, p Prompt) (string, error)

	// Notify presents a message that needs no reply.
	Notify(ctx context.Context, msg string) error
}
