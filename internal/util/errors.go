package util

import (
	"fmt"
	"strings"
)

// CasError is a structured, user-facing error with context and
// suggestions, used by the demo CLI to present engine failures. The
// engine package itself only ever returns plain wrapped errors against
// the sentinels in internal/objects — CasError is a presentation
// concern layered on top at the CLI boundary, never part of the
// engine's own return types.
type CasError struct {
	Title       string
	Message     string
	Causes      []string
	Suggestions []string
	Err         error
}

func (e *CasError) Error() string {
	return e.Title
}

func (e *CasError) Unwrap() error {
	return e.Err
}

// Format renders the error the way the CLI prints it to the terminal.
func (e *CasError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))
	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}
	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}
	return sb.String()
}

// NewError creates a new CasError with just a title.
func NewError(title string) *CasError {
	return &CasError{Title: title}
}

func (e *CasError) WithMessage(msg string) *CasError {
	e.Message = msg
	return e
}

func (e *CasError) WithCause(cause string) *CasError {
	e.Causes = append(e.Causes, cause)
	return e
}

func (e *CasError) WithCauses(causes ...string) *CasError {
	e.Causes = append(e.Causes, causes...)
	return e
}

func (e *CasError) WithSuggestion(sug string) *CasError {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

func (e *CasError) WithSuggestions(sugs ...string) *CasError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

func (e *CasError) Wrap(err error) *CasError {
	e.Err = err
	return e
}

// ConcurrentModificationError builds the CLI-facing error for a commit
// whose CAS lost the race against another writer.
func ConcurrentModificationError(refName string, err error) *CasError {
	return NewError(fmt.Sprintf("Ref %q changed concurrently", refName)).
		WithMessage("Another writer committed to this reference first").
		WithCause("Two processes committed to the same ref at nearly the same time").
		WithSuggestions(
			"casvc log "+refName+"   # See what the other writer committed",
			"casvc add ...           # Re-stage your changes and commit again",
		).
		Wrap(err)
}

// CommitNotFoundError builds the CLI-facing error for a reset target
// that does not exist.
func CommitNotFoundError(hash string, err error) *CasError {
	return NewError(fmt.Sprintf("Commit %q not found", hash)).
		WithSuggestion("casvc log <ref>   # View commit history").
		Wrap(err)
}

// NoChangesError builds the CLI-facing error for an empty commit attempt.
func NoChangesError(err error) *CasError {
	return NewError("Nothing to commit").
		WithMessage("The staging area has no effective changes against the current tree").
		Wrap(err)
}
