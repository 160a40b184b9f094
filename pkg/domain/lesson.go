package domain

import (
	"fmt"
	"strings"
)

// Lesson is what the user teaches the engine after a wrong diagnosis.
type Lesson struct {
	// Diagnosis is the correct diagnosis for the current case.
	Diagnosis string
	// Question distinguishes Diagnosis from the rejected one.
	Question string
	// AnswerForCorrect is the answer to Question that leads to Diagnosis.
	AnswerForCorrect Answer
}

// Normalize returns the lesson with surrounding whitespace trimmed.
func (l Lesson) Normalize() Lesson {
	l.Diagnosis = strings.TrimSpace(l.Diagnosis)
	l.Question = strings.TrimSpace(l.Question)
	return l
}

// Validate returns an error wrapping ErrEmptyInput if the diagnosis or the
// question is blank, and ErrInvalidNode if either contains a line break.
func (l Lesson) Validate() error {
	n := l.Normalize()
	if n.Diagnosis == "" {
		return fmt.Errorf("%w: diagnosis", ErrEmptyInput)
	}
	if n.Question == "" {
		return fmt.Errorf("%w: question", ErrEmptyInput)
	}
	if strings.ContainsAny(n.Diagnosis+n.Question, "\r\n") {
		return fmt.Errorf("%w: text cannot span multiple lines", ErrInvalidNode)
	}
	return nil
}
