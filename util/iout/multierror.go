package iout

import (
	"fmt"
	"strings"
)

// Collects errors from a sequence of operations that should all run
// (ex: closing every cached font file).
type MultiError struct {
	errors []error
}

// Returns an error (MultiError) or nil if the errors added were all nil.
func MultiErrors(errs ...error) error {
	me := &MultiError{}
	me.Add(errs...)
	return me.Result()
}

// Returns itself, or nil if it has no errors.
func (me *MultiError) Result() error {
	if len(me.errors) == 0 {
		return nil
	}
	return me
}

func (me *MultiError) Add(errs ...error) {
	for _, e := range errs {
		if e != nil {
			me.errors = append(me.errors, e)
		}
	}
}

// Allows errors.Is/As to match any of the errors.
func (me *MultiError) Unwrap() []error {
	return me.errors
}

func (me *MultiError) Error() string {
	if len(me.errors) == 1 {
		return me.errors[0].Error()
	}
	u := []string{}
	for i, e := range me.errors {
		v := strings.ReplaceAll(e.Error(), "\n", "\n\t")
		u = append(u, fmt.Sprintf("err%d: %v", i+1, v))
	}
	return fmt.Sprintf("multierror(%d){\n\t%s\n}", len(me.errors), strings.Join(u, "\n\t"))
}
