package app

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerNotFound is returned by Mount when the selector matches
	// nothing on the host.
	ErrContainerNotFound = errors.New("tinyvue: mount container not found")

	// ErrAlreadyMounted is returned by Mount on an app that is mounted.
	ErrAlreadyMounted = errors.New("tinyvue: app already mounted")

	// ErrNoRender is returned by Mount when the app has no render function
	// and the container holds no template.
	ErrNoRender = errors.New("tinyvue: no render function or template")

	// ErrNotMounted is returned by TryUpdate before Mount.
	ErrNotMounted = errors.New("tinyvue: app not mounted")

	// ErrPath is returned when a dotted path does not resolve to a record.
	ErrPath = errors.New("tinyvue: path does not resolve")
)

// TemplateError reports a malformed template.
type TemplateError struct {
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("tinyvue: template: %s at offset %d", e.Reason, e.Offset)
}

// panicError turns a recovered panic value into an error, keeping errors
// intact so errors.Is and errors.As still see through it.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("tinyvue: render panicked: %v", r)
}
