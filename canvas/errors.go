package canvas

import (
	"errors"
	"fmt"
)

var (
	ErrContextUnavailable = errors.New("canvas: no GL context available")
	ErrAlreadyAttached    = errors.New("canvas: already attached")
	ErrDetached           = errors.New("canvas: detached")
	ErrProgramNotLinked   = errors.New("canvas: program is not linked")
	ErrNoShader           = errors.New("canvas: no shader locator set")
)

// FetchError is reported when the fragment source could not be obtained.
type FetchError struct {
	Locator string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching shader %q: %v", e.Locator, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CompileError carries the driver log for a stage that failed to compile.
type CompileError struct {
	Stage  Stage
	Source string
	Log    string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%v shader\n\"\n%v\n\"\nfailed to compile: %v", e.Stage, e.Source, e.Log)
}

// LinkError carries the driver log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %v", e.Log)
}

// ValidateError is a non-fatal report that the linked program did not
// validate against the current binding state.
type ValidateError struct {
	Log string
}

func (e *ValidateError) Error() string {
	return fmt.Sprintf("failed to validate program: %v", e.Log)
}

// ContextError is returned by hosts that could not obtain a GL context for
// their surface. It matches ErrContextUnavailable.
type ContextError struct {
	Err error
}

func (e *ContextError) Error() string {
	if e.Err == nil {
		return ErrContextUnavailable.Error()
	}
	return fmt.Sprintf("%v: %v", ErrContextUnavailable, e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

func (e *ContextError) Is(target error) bool {
	return target == ErrContextUnavailable
}
