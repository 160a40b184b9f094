package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAnswer  EventType = "answer"
	EventConfirm EventType = "confirm"
	EventLearn   EventType = "learn"
	EventSave    EventType = "save"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// AnswerEvent is emitted when a question is answered.
type AnswerEvent struct {
	EventBase
	Question string `json:"question"`
	Answer   Answer `json:"answer"`
}

// ConfirmEvent is emitted when a diagnosis is accepted or rejected.
type ConfirmEvent struct {
	EventBase
	Diagnosis string `json:"diagnosis"`
	Correct   bool   `json:"correct"`
}

// LearnEvent is emitted after the tree has been extended.
type LearnEvent struct {
	EventBase
	Rejected  string `json:"rejected"`
	Diagnosis string `json:"diagnosis"`
	Question  string `json:"question"`
	AtRoot    bool   `json:"at_root"`
}

// SaveEvent is emitted after every persistence attempt.
type SaveEvent struct {
	EventBase
	Nodes    int           `json:"nodes"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnAnswer  func(context.Context, *AnswerEvent)
	OnConfirm func(context.Context, *ConfirmEvent)
	OnLearn   func(context.Context, *LearnEvent)
	OnSave    func(context.Context, *SaveEvent)
}

// Merge combines hooks so that every non-nil callback of each set runs in order.
func Merge(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range hooks {
		out.OnAnswer = chain(out.OnAnswer, h.OnAnswer)
		out.OnConfirm = chain(out.OnConfirm, h.OnConfirm)
		out.OnLearn = chain(out.OnLearn, h.OnLearn)
		out.OnSave = chain(out.OnSave, h.OnSave)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
