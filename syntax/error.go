package syntax

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/sharpgen/errors"
)

// ErrorContext selects how a ParseError renders.
type ErrorContext string

const (
	// ErrorContextTerminal renders with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain renders without ANSI codes (logs, test output)
	ErrorContextPlain ErrorContext = "plain"
)

// ParseError is the first problem found in a source file.
type ParseError struct {
	Err         error
	File        string
	Message     string
	Range       Range
	Token       string
	Suggestions []string
}

func newParseError(file string, r Range, token, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Err:     errors.ErrSyntax,
		File:    file,
		Message: fmt.Sprintf(format, args...),
		Range:   r,
		Token:   token,
	}
}

// Error renders the plain form so test failures and logs stay readable.
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError renders the error for the given context.
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

func (e *ParseError) location() string {
	name := e.File
	if name == "" {
		name = "<source>"
	}
	return name + ":" + e.Range.Start.String()
}

func (e *ParseError) formatPlainError() string {
	msg := e.location() + ": " + e.Message
	if e.Token != "" {
		msg += fmt.Sprintf(" (at %q)", e.Token)
	}
	if len(e.Suggestions) > 0 {
		msg += ". Suggestions: " + strings.Join(e.Suggestions, ", ")
	}
	return msg
}

func (e *ParseError) formatTerminalError() string {
	var sb strings.Builder
	sb.WriteString(pterm.Red(e.Message))
	sb.WriteString("\n\n" + pterm.LightCyan("Context:"))
	sb.WriteString("\n  " + pterm.Yellow("Location:") + " " + e.location())
	if e.Token != "" {
		sb.WriteString(fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Token:"), e.Token))
	}
	if len(e.Suggestions) > 0 {
		sb.WriteString("\n\n" + pterm.Green("Suggestions:"))
		for _, s := range e.Suggestions {
			sb.WriteString("\n  • " + s)
		}
	}
	return sb.String()
}

// WithSuggestion adds a possible fix.
func (e *ParseError) WithSuggestion(s string) *ParseError {
	e.Suggestions = append(e.Suggestions, s)
	return e
}

// Unwrap makes errors.Is(err, errors.ErrSyntax) hold.
func (e *ParseError) Unwrap() error {
	return e.Err
}
