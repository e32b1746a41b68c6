package expect

import (
	"fmt"
	"strings"

	"github.com/teranos/sharpgen/errors"
)

// TestingT is the part of *testing.T an expectation tree reports through.
type TestingT interface {
	Helper()
	Errorf(format string, args ...interface{})
	FailNow()
}

// Mode selects how failures are reported.
type Mode int

const (
	// FailFast reports the first failure and silences the rest of the tree.
	FailFast Mode = iota
	// Accumulate collects failures until Verify is called.
	Accumulate
)

func (m Mode) String() string {
	if m == Accumulate {
		return "accumulate"
	}
	return "fail-fast"
}

type options struct {
	mode     Mode
	filename string
}

// Option configures the root of an expectation tree.
type Option func(*options)

// WithMode sets the reporting mode.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithFilename names parsed sources in messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

func buildOptions(opts []Option) options {
	o := options{mode: FailFast, filename: "source.cs"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AssertionError is one structural fact that did not hold.
type AssertionError struct {
	Declaration string
	Expected    string
	Actual      string
}

func (e *AssertionError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("%s: expected %s", e.Declaration, e.Expected)
	}
	return fmt.Sprintf("%s: expected %s, found %s", e.Declaration, e.Expected, e.Actual)
}

// Unwrap makes errors.Is(err, errors.ErrAssertion) hold.
func (e *AssertionError) Unwrap() error { return errors.ErrAssertion }

// ExpectationError carries every failure collected in Accumulate mode.
type ExpectationError struct {
	Failures []*AssertionError
}

func (e *ExpectationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d expectation(s) not met:", len(e.Failures))
	for _, f := range e.Failures {
		sb.WriteString("\n  - ")
		sb.WriteString(f.Error())
	}
	return sb.String()
}

// Unwrap makes errors.Is(err, errors.ErrExpectation) hold.
func (e *ExpectationError) Unwrap() error { return errors.ErrExpectation }

// reporter is shared by every expectation of one tree.
type reporter struct {
	t        TestingT
	mode     Mode
	first    *AssertionError
	failures []*AssertionError
}

// active is false once a fail-fast tree has failed.
func (r *reporter) active() bool {
	return r.mode != FailFast || r.first == nil
}

func (r *reporter) report(e *AssertionError) {
	if !r.active() {
		return
	}
	r.t.Helper()
	if r.first == nil {
		r.first = e
	}
	if r.mode == Accumulate {
		r.failures = append(r.failures, e)
		return
	}
	r.t.Errorf("%s", e.Error())
	r.t.FailNow()
}

func (r *reporter) verify() error {
	r.t.Helper()
	if r.mode == FailFast {
		if r.first == nil {
			return nil
		}
		return r.first
	}
	if len(r.failures) == 0 {
		return nil
	}
	err := &ExpectationError{Failures: r.failures}
	r.failures = nil
	r.t.Errorf("%s", err.Error())
	r.t.FailNow()
	return err
}

// node is what every expectation knows about itself: the tree's reporter
// and how to name its declaration in messages.
type node struct {
	r    *reporter
	desc string
}

func (n *node) child(desc string) *node {
	return &node{r: n.r, desc: desc}
}

func (n *node) active() bool { return n.r.active() }

func (n *node) fail(expected, actual string) {
	n.r.t.Helper()
	n.r.report(&AssertionError{Declaration: n.desc, Expected: expected, Actual: actual})
}

// check reports a failure unless ok holds. It is a no-op on a silenced tree.
func (n *node) check(ok bool, expected, actual string) {
	n.r.t.Helper()
	if ok || !n.active() {
		return
	}
	n.fail(expected, actual)
}

// Verify reports the failures collected in Accumulate mode as one
// ExpectationError and returns it. In FailFast mode it returns the failure
// that was already reported, if any.
func (n *node) Verify() error {
	n.r.t.Helper()
	return n.r.verify()
}

// Failed reports whether any expectation of the tree has failed.
func (n *node) Failed() bool {
	return n.r.first != nil
}

// Description names the wrapped declaration as messages do.
func (n *node) Description() string { return n.desc }

func quoteList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}

// squash removes whitespace so type text compares by its tokens.
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func run[E any](e E, fns []func(E)) {
	for _, fn := range fns {
		if fn != nil {
			fn(e)
		}
	}
}
