package codebuilder

import (
	"github.com/teranos/sharpgen/errors"
)

// Catch runs fn and returns the builder misuse error it panicked with.
// Panics that are not builder errors are re-raised.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && (errors.IsInvalidArgument(e) || errors.IsInvalidOperation(e)) {
			err = e
			return
		}
		panic(r)
	}()
	fn()
	return nil
}
