package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError
	ErrNotFound = errors.New("not found")
	// ErrNoPath matches every *NoPathError
	ErrNoPath = errors.New("no path")
)

// NotFoundError reports a name with no matching point, or a node missing from a graph
type NotFoundError struct {
	Kind string // "point" or "node"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NoPathError reports two nodes that lie in disconnected components
type NoPathError struct {
	From string
	To   string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path between %s and %s", e.From, e.To)
}

func (e *NoPathError) Is(target error) bool {
	return target == ErrNoPath
}
