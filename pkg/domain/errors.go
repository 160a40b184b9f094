package domain

import "errors"

// ErrCorruptTreeFormat is returned when a serialized tree cannot be parsed.
var ErrCorruptTreeFormat = errors.New("corrupt tree format")

// ErrEmptyInput is returned when a required lesson field is blank.
var ErrEmptyInput = errors.New("input cannot be empty")

// ErrStorage is returned when the tree cannot be read from or written to its store.
var ErrStorage = errors.New("tree storage failure")

// ErrTreeNotFound is returned by a store that holds no tree yet.
var ErrTreeNotFound = errors.New("tree not found")

// ErrInvalidTransition is returned when an engine operation does not match the cursor phase.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrInvalidNode is returned when a node cannot be serialized faithfully.
var ErrInvalidNode = errors.New("invalid node")
