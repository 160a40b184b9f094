package domain

import (
	"fmt"
	"strings"
)

// Answer is a reply to a yes/no question.
type Answer bool

const (
	AnswerYes Answer = true
	AnswerNo  Answer = false
)

func (a Answer) String() string {
	if a {
		return "yes"
	}
	return "no"
}

// ParseAnswer accepts "yes"/"y" and "no"/"n", ignoring case and surrounding spaces.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return AnswerYes, nil
	case "no", "n":
		return AnswerNo, nil
	}
	return AnswerNo, fmt.Errorf("not a yes/no answer: %q", s)
}
